package navbox

import "strings"

// BadLink replaces a token where a link was opened while already inside another link.
const BadLink = "Bad Link"

// Keywords of the argument grammar, where each directive is a line of space separated tokens.
const (
	keywordTitle      = "nb-title"
	keywordGroupTitle = "nbg-title"
	keywordGroupItems = "nbg-items"
)

func isKeyword(token string) bool {
	return token == keywordTitle || token == keywordGroupTitle || token == keywordGroupItems
}

// ScanArgs splits a line into tokens separated by blanks.
//
// Text between double quotes is a single token, without the quotes.
// A wiki link between '[[' and ']]' is a single token including the brackets,
// and it can contain blanks. Opening a link inside another link produces the
// BadLink token and scanning continues with the next character.
func ScanArgs(line string) []string {
	var args []string
	var arg strings.Builder

	// Inside a quoted string or inside a link. Both can not be true at the same time.
	var inQuote, inLink bool

	emit := func() {
		args = append(args, arg.String())
		arg.Reset()
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"' && !inLink:
			// The closing quote ends the token, even if it is empty
			if inQuote {
				emit()
			}
			inQuote = !inQuote
			continue

		case c == '[' && !inQuote && peekByte(line, i) == '[':
			if inLink {
				// Discard what we had and tell the user we had a bad link
				arg.Reset()
				args = append(args, BadLink)
				continue
			}
			arg.WriteString("[[")
			i++
			inLink = true
			continue

		case c == ']' && inLink && peekByte(line, i) == ']':
			arg.WriteString("]]")
			i++
			inLink = false
			emit()
			continue

		case c == ' ' && !inQuote && !inLink:
			// Runs of blanks do not produce empty tokens
			if arg.Len() > 0 {
				emit()
			}
			continue
		}

		arg.WriteByte(c)
	}

	// Whatever is left is the last token, even without a closing delimiter
	if arg.Len() > 0 {
		emit()
	}

	return args
}

// peekByte returns the byte following position i, or zero at the end of the line.
func peekByte(line string, i int) byte {
	if i+1 < len(line) {
		return line[i+1]
	}
	return 0
}
