package search

const (
	dividerID       = "divider"
	sectionHeaderID = "section_header"
)

// NewEmptyDivider returns a new empty divider record. Every call allocates,
// so a divider placed in one result list never aliases another.
func NewEmptyDivider() *Target {
	return &Target{
		ID:         dividerID,
		LayoutType: LayoutEmptyDivider,
		ResultType: ResultNoFulfillment,
		Extras:     Extras{},
	}
}

// NewSectionHeader returns a new section header record.
func NewSectionHeader() *Target {
	return &Target{
		ID:         sectionHeaderID,
		LayoutType: LayoutSectionHeader,
		ResultType: ResultNoFulfillment,
		Extras:     Extras{},
	}
}

// IsDivider reports whether t is an empty divider.
func IsDivider(t *Target) bool {
	return t != nil && t.LayoutType == LayoutEmptyDivider
}

// IsSectionHeader reports whether t is a section header.
func IsSectionHeader(t *Target) bool {
	return t != nil && t.LayoutType == LayoutSectionHeader
}
