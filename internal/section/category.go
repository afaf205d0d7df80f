package section

// Category is one of the fixed section labels a résumé line can land in.
type Category string

const (
	Education  Category = "education"
	Experience Category = "experience"
	Skills     Category = "skills"
	// Other is both a real classification target and the default state:
	// a document with no recognizable headings ends up entirely under it.
	Other Category = "other"
)

// Categories returns the closed category set in canonical order.
func Categories() []Category {
	return []Category{Education, Experience, Skills, Other}
}

// SectionMap is the final output of segmentation: every category maps to the
// joined text of the lines assigned to it, trimmed at the ends. All four keys
// are always present, even when the text is empty.
type SectionMap map[Category]string
