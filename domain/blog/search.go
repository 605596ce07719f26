package blog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lib/pq"
)

// highlightTerm wraps every case-insensitive occurrence of term in <mark>
// tags, preserving the original casing of the matched text. Matching walks
// runes, not bytes: case pairs whose byte lengths differ must never shift
// the marked span or split a character.
func highlightTerm(s, term string) string {
	if term == "" {
		return s
	}

	var b strings.Builder
	i := 0
	for i < len(s) {
		if n := foldPrefixLen(s[i:], term); n > 0 {
			b.WriteString("<mark>")
			b.WriteString(s[i : i+n])
			b.WriteString("</mark>")
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldPrefixLen returns the byte length of the prefix of s that spells term
// under case folding, or 0 when s does not start with term.
func foldPrefixLen(s, term string) int {
	n := 0
	for _, tr := range term {
		sr, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(sr) != unicode.ToLower(tr) {
			return 0
		}
		n += size
	}
	return n
}

// highlightPost marks matches in the returned title and excerpt only.
// Stored content is never rewritten.
func highlightPost(p BlogPost, term string) BlogPost {
	p.Title = highlightTerm(p.Title, term)
	p.Excerpt = highlightTerm(p.Excerpt, term)
	return p
}

// buildSearch renders the WHERE clause for a SearchRequest.
func buildSearch(req SearchRequest) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Query != "" {
		p := arg("%" + req.Query + "%")
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %s OR content ILIKE %s OR excerpt ILIKE %s OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE %s))",
			p, p, p, p))
	}
	if len(req.Tags) > 0 {
		conds = append(conds, fmt.Sprintf("tags && %s", arg(pq.Array(req.Tags))))
	}
	if req.Author != "" {
		conds = append(conds, fmt.Sprintf("author ILIKE %s", arg("%"+req.Author+"%")))
	}
	if req.Published != nil {
		conds = append(conds, fmt.Sprintf("published = %s", arg(*req.Published)))
	}
	if req.DateFrom != nil {
		conds = append(conds, fmt.Sprintf("created_at >= %s", arg(*req.DateFrom)))
	}
	if req.DateTo != nil {
		conds = append(conds, fmt.Sprintf("created_at <= %s", arg(*req.DateTo)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
