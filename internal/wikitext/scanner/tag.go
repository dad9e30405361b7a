package scanner

import "strings"

// DefaultImagePrefix marks a directive as an embedded image.
const DefaultImagePrefix = "Image:"

// Kind is the directive type.
type Kind int

const (
	KindLink Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "link"
}

// Tag is a parsed directive body.
type Tag struct {
	Kind Kind
	// Title is the referenced page or image, trimmed. Empty for anchor-only links.
	Title string
	// Hash is the fragment as authored, without the leading #.
	Hash    string
	HasHash bool
	// Target is the authored title#hash text used as default link text.
	Target string
	// Name is everything after the first | of a link, pipes included.
	Name    string
	HasName bool
	// Params holds the pipe-separated image parameters in order.
	Params []string
}

// Parse splits a directive body with the default image prefix.
func Parse(body string) Tag {
	return ParseWithPrefix(body, DefaultImagePrefix)
}

// ParseWithPrefix splits a directive body. Bodies starting with prefix are
// images: the title ends at the first | and the rest is split on every |.
// Anything else is a link split on the first | and then the first #.
func ParseWithPrefix(body, prefix string) Tag {
	if prefix != "" && strings.HasPrefix(body, prefix) {
		rest := body[len(prefix):]
		title, params, hasParams := strings.Cut(rest, "|")
		tag := Tag{Kind: KindImage, Title: strings.TrimSpace(title)}
		if hasParams {
			tag.Params = strings.Split(params, "|")
		}
		return tag
	}

	target, name, hasName := strings.Cut(body, "|")
	target = strings.TrimSpace(target)
	title, hash, hasHash := strings.Cut(target, "#")
	return Tag{
		Kind:    KindLink,
		Title:   strings.TrimSpace(title),
		Hash:    strings.TrimSpace(hash),
		HasHash: hasHash,
		Target:  target,
		Name:    name,
		HasName: hasName,
	}
}
