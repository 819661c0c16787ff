package entity

// Constant maps a service to its repository and display name.
type Constant struct {
	ID      ID
	Repo    string
	Service string
	Name    string
}

// ConstantInfo is a constant enriched with live refs from the VCS host.
// Tags and branches are fetched at read time and never persisted.
type ConstantInfo struct {
	Constant
	Tags     []string `json:"tags"`
	Branches []string `json:"branches"`
}
