package stash

// Modifier is a criterion comparison understood by the host's filter inputs.
type Modifier string

const (
	ModifierEquals          Modifier = "EQUALS"
	ModifierIsNull          Modifier = "IS_NULL"
	ModifierNotNull         Modifier = "NOT_NULL"
	ModifierMatchesRegex    Modifier = "MATCHES_REGEX"
	ModifierNotMatchesRegex Modifier = "NOT_MATCHES_REGEX"
	ModifierLessThan        Modifier = "LESS_THAN"
)

// StringCriterion filters a string field.
type StringCriterion struct {
	Value    string   `json:"value"`
	Modifier Modifier `json:"modifier"`
}

// IntCriterion filters a numeric field.
type IntCriterion struct {
	Value    int      `json:"value"`
	Modifier Modifier `json:"modifier"`
}

// GalleryFilter is the subset of the host's GalleryFilterType the passes use.
// Set criteria are combined with AND.
type GalleryFilter struct {
	Title          *StringCriterion `json:"title,omitempty"`
	Date           *StringCriterion `json:"date,omitempty"`
	Code           *StringCriterion `json:"code,omitempty"`
	PerformerCount *IntCriterion    `json:"performer_count,omitempty"`
	TagCount       *IntCriterion    `json:"tag_count,omitempty"`
}

// IsNull matches records whose field is unset.
func IsNull() *StringCriterion {
	return &StringCriterion{Value: "", Modifier: ModifierIsNull}
}

// MatchesRegex matches string fields against a server-side regular expression.
func MatchesRegex(pattern string) *StringCriterion {
	return &StringCriterion{Value: pattern, Modifier: ModifierMatchesRegex}
}

// NotMatchesRegex excludes string fields matching a server-side regular expression.
func NotMatchesRegex(pattern string) *StringCriterion {
	return &StringCriterion{Value: pattern, Modifier: ModifierNotMatchesRegex}
}

// CountEquals matches an exact count.
func CountEquals(n int) *IntCriterion {
	return &IntCriterion{Value: n, Modifier: ModifierEquals}
}

// CountLessThan matches counts strictly below n.
func CountLessThan(n int) *IntCriterion {
	return &IntCriterion{Value: n, Modifier: ModifierLessThan}
}

// GalleryFile is one file attached to a gallery (usually an archive).
type GalleryFile struct {
	Basename string `json:"basename"`
}

// Folder is the directory backing a folder-based gallery.
type Folder struct {
	Path string `json:"path"`
}

// Tag is a host tag with its aliases.
type Tag struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Performer is a host performer with its aliases.
type Performer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	AliasList []string `json:"alias_list"`
}

// Gallery carries whichever fields the query selected; unselected fields stay
// at their zero values.
type Gallery struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Date       string        `json:"date"`
	Code       string        `json:"code"`
	URLs       []string      `json:"urls"`
	Files      []GalleryFile `json:"files"`
	Folder     *Folder       `json:"folder"`
	Tags       []Tag         `json:"tags"`
	Performers []Performer   `json:"performers"`
}

// TagIDs returns the identifiers of the attached tags in order.
func (g Gallery) TagIDs() []string {
	ids := make([]string, 0, len(g.Tags))
	for _, tag := range g.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// GalleryUpdate is a partial patch; nil fields are left untouched by the host.
type GalleryUpdate struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title,omitempty"`
	Date         *string   `json:"date,omitempty"`
	Code         *string   `json:"code,omitempty"`
	URLs         *[]string `json:"urls,omitempty"`
	PerformerIDs *[]string `json:"performer_ids,omitempty"`
	TagIDs       *[]string `json:"tag_ids,omitempty"`
}

// StringPtr returns a pointer for optional update fields.
func StringPtr(value string) *string {
	return &value
}

// StringsPtr returns a pointer to a non-nil slice so an empty list is sent as
// [] (clearing the field) rather than being omitted.
func StringsPtr(values ...string) *[]string {
	out := make([]string, len(values))
	copy(out, values)
	return &out
}

// LibraryPath is one configured library root.
type LibraryPath struct {
	Path         string `json:"path"`
	ExcludeVideo bool   `json:"excludeVideo"`
	ExcludeImage bool   `json:"excludeImage"`
}
