package store

import (
	"time"

	"jobmate/jobboard-service/internal/catalog"
)

// User is an account provisioned by the identity service.
type User struct {
	ID        string           `db:"id" json:"id"`
	FirstName string           `db:"first_name" json:"firstName"`
	LastName  string           `db:"last_name" json:"lastName"`
	Username  string           `db:"username" json:"username"`
	Email     string           `db:"email" json:"email"`
	Role      catalog.Role     `db:"role" json:"role"`
	Status    catalog.Presence `db:"status" json:"status"`
	Verified  bool             `db:"verified" json:"verified"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

// FullName is "first last".
func (u User) FullName() string { return u.FirstName + " " + u.LastName }

// Company is owned by exactly one HR user.
type Company struct {
	ID                string                `db:"id" json:"id"`
	Name              string                `db:"name" json:"name"`
	Slug              string                `db:"slug" json:"slug"`
	Description       string                `db:"description" json:"description"`
	Industry          string                `db:"industry" json:"industry"`
	Address           string                `db:"address" json:"address"`
	NumberOfEmployees catalog.EmployeeRange `db:"number_of_employees" json:"numberOfEmployees"`
	CompanyEmail      string                `db:"company_email" json:"companyEmail"`
	CompanyHR         string                `db:"company_hr" json:"companyHR"`
	CreatedAt         time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time             `db:"updated_at" json:"updatedAt"`
}

// Job is a posting belonging to a company.
type Job struct {
	ID              string                 `db:"id" json:"id"`
	Title           string                 `db:"title" json:"title"`
	Location        catalog.JobLocation    `db:"location" json:"location"`
	WorkingTime     catalog.WorkingTime    `db:"working_time" json:"workingTime"`
	SeniorityLevel  catalog.SeniorityLevel `db:"seniority_level" json:"seniorityLevel"`
	Description     string                 `db:"description" json:"description"`
	TechnicalSkills []string               `db:"technical_skills" json:"technicalSkills"`
	SoftSkills      []string               `db:"soft_skills" json:"softSkills"`
	AddedBy         string                 `db:"added_by" json:"addedBy"`
	Company         string                 `db:"company" json:"company"`
	CreatedAt       time.Time              `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updatedAt"`
}

// Application links a user to a job with the resume they submitted.
type Application struct {
	ID             string    `db:"id" json:"id"`
	JobID          string    `db:"job_id" json:"jobId"`
	UserID         string    `db:"user_id" json:"userId"`
	UserTechSkills []string  `db:"user_tech_skills" json:"userTechSkills"`
	UserSoftSkills []string  `db:"user_soft_skills" json:"userSoftSkills"`
	ResumeURL      string    `db:"resume_url" json:"resumeUrl"`
	ResumePublicID string    `db:"resume_public_id" json:"resumePublicId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// CompanyCount is the number of applications a company received in a window.
type CompanyCount struct {
	CompanyID   string `db:"company_id" json:"companyId"`
	CompanyName string `db:"company_name" json:"companyName"`
	CompanyHR   string `db:"company_hr" json:"companyHR"`
	Count       int64  `db:"applications" json:"applications"`
}
