// Package catalog holds the closed value sets of the job board.
//
// Values mirror the CHECK constraints in the PostgreSQL schema; Parse*
// functions reject anything outside them.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// EmployeeRange is a company's head-count bracket.
type EmployeeRange string

const (
	EmployeesSmall  EmployeeRange = "1-50"
	EmployeesMedium EmployeeRange = "51-100"
	EmployeesLarge  EmployeeRange = "101-200"
)

// JobLocation is where the work happens.
type JobLocation string

const (
	LocationOnsite   JobLocation = "onsite"
	LocationRemotely JobLocation = "remotely"
	LocationHybrid   JobLocation = "hybrid"
)

// WorkingTime is the contract load.
type WorkingTime string

const (
	PartTime WorkingTime = "part-time"
	FullTime WorkingTime = "full-time"
)

// SeniorityLevel is the level a job is posted for.
type SeniorityLevel string

const (
	SeniorityJunior   SeniorityLevel = "Junior"
	SeniorityMidLevel SeniorityLevel = "Mid-Level"
	SenioritySenior   SeniorityLevel = "Senior"
	SeniorityTeamLead SeniorityLevel = "Team-Lead"
	SeniorityCTO      SeniorityLevel = "CTO"
)

// Role decides which routes a user may call.
type Role string

const (
	RoleUser      Role = "User"
	RoleCompanyHR Role = "Company_HR"
)

// Presence is a user's online status.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
)

// Allowed values, in display order.
var (
	EmployeeRanges  = []EmployeeRange{EmployeesSmall, EmployeesMedium, EmployeesLarge}
	JobLocations    = []JobLocation{LocationOnsite, LocationRemotely, LocationHybrid}
	WorkingTimes    = []WorkingTime{PartTime, FullTime}
	SeniorityLevels = []SeniorityLevel{SeniorityJunior, SeniorityMidLevel, SenioritySenior, SeniorityTeamLead, SeniorityCTO}
)

// ParseEmployeeRange converts a raw string to an EmployeeRange.
func ParseEmployeeRange(s string) (EmployeeRange, error) {
	return parse(EmployeeRanges, s, "number of employees")
}

// ParseJobLocation converts a raw string to a JobLocation.
func ParseJobLocation(s string) (JobLocation, error) {
	return parse(JobLocations, s, "job location")
}

// ParseWorkingTime converts a raw string to a WorkingTime.
func ParseWorkingTime(s string) (WorkingTime, error) {
	return parse(WorkingTimes, s, "working time")
}

// ParseSeniorityLevel converts a raw string to a SeniorityLevel.
func ParseSeniorityLevel(s string) (SeniorityLevel, error) {
	return parse(SeniorityLevels, s, "seniority level")
}

// Names joins values with single spaces, e.g. "part-time full-time".
func Names[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}

func parse[T ~string](allowed []T, s, what string) (T, error) {
	if v := T(s); slices.Contains(allowed, v) {
		return v, nil
	}
	return "", fmt.Errorf("unknown %s %q", what, s)
}
