package roster

import (
	"regexp"
	"strings"
)

var (
	studentNumberingRe = regexp.MustCompile(`^[\s\x{3000}]*\d+[.、:：)\-\s]*`)
	colonSplitRe       = regexp.MustCompile(`[:：]`)
)

// Separators tried when splitting a student line into name and username.
// Order matters: the arrow form is explicit, the dash forms are last because
// they also appear inside names.
var studentSeparators = []string{"->", "：", ":", "-", "—"}

// ParseStudentList extracts (name, username) pairs from pasted free text.
// One student per line; numbering is stripped; lines that cannot be split
// are skipped. A single bare token is taken as both name and username.
func ParseStudentList(content string) map[string]string {
	students := make(map[string]string)
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(studentNumberingRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		name, username, ok := splitStudentLine(line)
		if !ok {
			continue
		}

		// A username that still carries a colon means the separator pass
		// split too early; keep the final segment as the username and fold
		// the rest back into the name.
		if colonSplitRe.MatchString(username) {
			parts := colonSplitRe.Split(username, -1)
			candidate := strings.TrimSpace(parts[len(parts)-1])
			if candidate != "" {
				var tail []string
				for _, p := range parts[:len(parts)-1] {
					if t := strings.TrimSpace(p); t != "" {
						tail = append(tail, t)
					}
				}
				username = candidate
				if len(tail) > 0 {
					name = strings.TrimSpace(name + " " + strings.Join(tail, " "))
				}
			}
		}

		username = SanitizeUsername(username)
		if name == "" || username == "" {
			continue
		}
		students[name] = username
	}
	return students
}

func splitStudentLine(line string) (name, username string, ok bool) {
	for _, sep := range studentSeparators {
		if idx := strings.LastIndex(line, sep); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			username = strings.TrimSpace(line[idx+len(sep):])
			return name, username, name != "" && username != ""
		}
	}
	fields := strings.Fields(line)
	switch {
	case len(fields) >= 2:
		name = strings.Join(fields[:len(fields)-1], " ")
		username = fields[len(fields)-1]
		return name, username, true
	case len(fields) == 1:
		return fields[0], fields[0], true
	default:
		return "", "", false
	}
}
