package models

// UserRole is the platform-wide role of a user.
type UserRole string

const (
	RoleIndividual UserRole = "INDIVIDUAL"
	RoleCurator    UserRole = "CURATOR"
	RoleAdmin      UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleIndividual, RoleCurator, RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether r meets any of the required roles. ADMIN satisfies every requirement.
func (r UserRole) Satisfies(required ...UserRole) bool {
	if r == RoleAdmin {
		return true
	}
	for _, want := range required {
		if r == want {
			return true
		}
	}
	return false
}

// ProjectRole is a user's role inside a single project team.
type ProjectRole string

const (
	ProjectRoleOwner       ProjectRole = "OWNER"
	ProjectRoleContributor ProjectRole = "CONTRIBUTOR"
)

func (r ProjectRole) Valid() bool {
	return r == ProjectRoleOwner || r == ProjectRoleContributor
}

// ResourceType classifies a project resource link.
type ResourceType string

const (
	ResourceImage        ResourceType = "image"
	ResourceDocument     ResourceType = "document"
	ResourcePresentation ResourceType = "presentation"
	ResourcePaper        ResourceType = "paper"
	ResourceOther        ResourceType = "other"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceImage, ResourceDocument, ResourcePresentation, ResourcePaper, ResourceOther:
		return true
	}
	return false
}

// TagStatus is the recognition state a curator records on a project tag.
type TagStatus string

const (
	TagPublished TagStatus = "PUBLISHED"
	TagInReview  TagStatus = "IN_REVIEW"
	TagDraft     TagStatus = "DRAFT"
	TagCompleted TagStatus = "COMPLETED"
	TagOngoing   TagStatus = "ONGOING"
)

func (s TagStatus) Valid() bool {
	switch s {
	case TagPublished, TagInReview, TagDraft, TagCompleted, TagOngoing:
		return true
	}
	return false
}
