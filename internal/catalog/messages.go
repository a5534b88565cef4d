package catalog

// Messages is the set of user-facing strings for one entity.
type Messages struct {
	AlreadyExist string
	NotFound     string
	Created      string
	Updated      string
	Deleted      string
	FailToCreate string
	FailToUpdate string
	FailToDelete string
}

func messagesFor(entity string) Messages {
	return Messages{
		AlreadyExist: entity + " Already Exist",
		NotFound:     entity + " Not Found",
		Created:      entity + " Created Successfully",
		Updated:      entity + " Updated Successfully",
		Deleted:      entity + " Deleted Successfully",
		FailToCreate: "Fail to create " + entity,
		FailToUpdate: "Fail to Update " + entity,
		FailToDelete: "Fail to Delete " + entity,
	}
}

var (
	CompanyMessages     = messagesFor("company")
	JobMessages         = messagesFor("job")
	UserMessages        = messagesFor("user")
	ApplicationMessages = messagesFor("application")
)

const (
	MsgUnauthorized        = "unauthorized to access this api"
	MsgUserHasCompany      = "user already has a company"
	MsgApplied             = "Application submitted successfully."
	MsgAlreadyApplied      = "You have already applied for this job."
	MsgNoApplicationsOnDay = "No applications found on the specified day"
	MsgResumeRequired      = "resume is required"
	MsgInvalidRequest      = "Invalid request"
)
