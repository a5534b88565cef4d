package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/board"
	"jobmate/jobboard-service/internal/catalog"
)

// ─── Request bodies ──────────────────────────────────────────────────────────

type companyRequest struct {
	Name              string `json:"name" validate:"required,max=200"`
	Description       string `json:"description" validate:"required,max=2000"`
	Industry          string `json:"industry" validate:"required"`
	Address           string `json:"address" validate:"required"`
	NumberOfEmployees string `json:"numberOfEmployees" validate:"required,employees"`
	CompanyEmail      string `json:"companyEmail" validate:"required,email"`
}

func (r companyRequest) input() board.CompanyInput {
	return board.CompanyInput{
		Name:              r.Name,
		Description:       r.Description,
		Industry:          r.Industry,
		Address:           r.Address,
		NumberOfEmployees: catalog.EmployeeRange(r.NumberOfEmployees),
		CompanyEmail:      r.CompanyEmail,
	}
}

// companyPatch is companyRequest with every field optional.
type companyPatch struct {
	Name              string `json:"name" validate:"omitempty,max=200"`
	Description       string `json:"description" validate:"omitempty,max=2000"`
	Industry          string `json:"industry"`
	Address           string `json:"address"`
	NumberOfEmployees string `json:"numberOfEmployees" validate:"omitempty,employees"`
	CompanyEmail      string `json:"companyEmail" validate:"omitempty,email"`
}

func (r companyPatch) input() board.CompanyInput {
	return companyRequest(r).input()
}

type jobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Location        string   `json:"location" validate:"required,joblocation"`
	WorkingTime     string   `json:"workingTime" validate:"required,workingtime"`
	SeniorityLevel  string   `json:"seniorityLevel" validate:"required,seniority"`
	Description     string   `json:"description" validate:"required,max=2000"`
	TechnicalSkills []string `json:"technicalSkills" validate:"required,min=1,dive,required"`
	SoftSkills      []string `json:"softSkills" validate:"required,dive,required"`
	Company         string   `json:"company" validate:"required,uuid"`
}

func (r jobRequest) input() board.JobInput {
	return board.JobInput{
		Title:           r.Title,
		Location:        catalog.JobLocation(r.Location),
		WorkingTime:     catalog.WorkingTime(r.WorkingTime),
		SeniorityLevel:  catalog.SeniorityLevel(r.SeniorityLevel),
		Description:     r.Description,
		TechnicalSkills: r.TechnicalSkills,
		SoftSkills:      r.SoftSkills,
		Company:         r.Company,
	}
}

type applyRequest struct {
	UserTechSkills []string `json:"userTechSkills" validate:"required,dive,required"`
	UserSoftSkills []string `json:"userSoftSkills" validate:"required,dive,required"`
	ResumeURL      string   `json:"resumeUrl" validate:"required,url"`
	ResumePublicID string   `json:"resumePublicId"`
}

func (r applyRequest) input() board.ApplyInput {
	return board.ApplyInput{
		TechSkills:     r.UserTechSkills,
		SoftSkills:     r.UserSoftSkills,
		ResumeURL:      r.ResumeURL,
		ResumePublicID: r.ResumePublicID,
	}
}

// ─── Decoding ────────────────────────────────────────────────────────────────

// enumTag validates a field against one of the catalog's closed sets.
type enumTag struct {
	parse   func(string) error
	allowed string
}

var enumTags = map[string]enumTag{
	"employees": {
		parse:   func(s string) error { _, err := catalog.ParseEmployeeRange(s); return err },
		allowed: catalog.Names(catalog.EmployeeRanges),
	},
	"joblocation": {
		parse:   func(s string) error { _, err := catalog.ParseJobLocation(s); return err },
		allowed: catalog.Names(catalog.JobLocations),
	},
	"workingtime": {
		parse:   func(s string) error { _, err := catalog.ParseWorkingTime(s); return err },
		allowed: catalog.Names(catalog.WorkingTimes),
	},
	"seniority": {
		parse:   func(s string) error { _, err := catalog.ParseSeniorityLevel(s); return err },
		allowed: catalog.Names(catalog.SeniorityLevels),
	},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, e := range enumTags {
		parse := e.parse
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		})
	}
	return v
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decode reads a JSON body into dst and validates it. All field errors are
// reported at once.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.TooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return apperr.Invalid("%s: %v", catalog.MsgInvalidRequest, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return apperr.Invalid("%s", strings.Join(msgs, ", "))
		}
		return apperr.Invalid("%v", err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if e, ok := enumTags[fe.Tag()]; ok {
		return fmt.Sprintf("%q must be one of [%s]", field, e.allowed)
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "max":
		return fmt.Sprintf("%q must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%q must contain at least %s items", field, fe.Param())
	}
	return fmt.Sprintf("%q must be a valid %s", field, fe.Tag())
}

// pathID reads a uuid path parameter.
func pathID(r *http.Request, name string) (string, error) {
	return parseID(name, chi.URLParam(r, name))
}

func parseID(name, raw string) (string, error) {
	if raw == "" {
		return "", apperr.Invalid("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperr.Invalid("%s must be a valid id", name)
	}
	return id.String(), nil
}
