package warden

// Action is one of the atomic capabilities that can be granted on a
// resource type.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions lists every defined action. The set is fixed; actions are not
// created at runtime.
var Actions = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return true
	default:
		return false
	}
}

type ResourceType string

const ResourceTypeDocument ResourceType = "document"

// Principal is an authenticated identity subject to access checks. ID and
// Issuer together identify it; a principal with an empty ID is anonymous
// and is always denied.
type Principal struct {
	ID     string `json:"id"`
	Issuer string `json:"issuer"`
}

func (p Principal) Anonymous() bool {
	return p.ID == ""
}

type Group struct {
	Name string `json:"name"`
}

type Permission struct {
	Action       Action       `json:"action"`
	ResourceType ResourceType `json:"resource_type"`
}

// GroupDefinition declares a group and the full permission set it should
// hold after provisioning.
type GroupDefinition struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

func (d Decision) Allowed() bool {
	return d == DecisionAllow
}

// DefaultGroupDefinitions is the standard catalog for the document
// resource: Viewers may look, Editors may change, Admins may also delete.
var DefaultGroupDefinitions = []GroupDefinition{
	{
		Name: "Viewers",
		Permissions: []Permission{
			{Action: ActionView, ResourceType: ResourceTypeDocument},
		},
	},
	{
		Name: "Editors",
		Permissions: []Permission{
			{Action: ActionView, ResourceType: ResourceTypeDocument},
			{Action: ActionCreate, ResourceType: ResourceTypeDocument},
			{Action: ActionEdit, ResourceType: ResourceTypeDocument},
		},
	},
	{
		Name: "Admins",
		Permissions: []Permission{
			{Action: ActionView, ResourceType: ResourceTypeDocument},
			{Action: ActionCreate, ResourceType: ResourceTypeDocument},
			{Action: ActionEdit, ResourceType: ResourceTypeDocument},
			{Action: ActionDelete, ResourceType: ResourceTypeDocument},
		},
	},
}
