package lexer

// The RuneSupplier is simpler than a lexer: it just walks the runes of the source,
// keeping track of the line and column. The lexer uses it to slurp up literals and
// identifiers, and the REPL uses it to find where a line stops being balanced.
type RuneSupplier struct {
	code      []rune
	pos       int
	lineNo    int
	lineStart int
}

func NewRuneSupplier(code []rune) *RuneSupplier {
	return &RuneSupplier{code: code, lineNo: 1}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos < len(rs.code) {
		return rs.code[rs.pos]
	}
	return 0
}

func (rs *RuneSupplier) PeekRune() rune {
	if rs.pos+1 < len(rs.code) {
		return rs.code[rs.pos+1]
	}
	return 0
}

func (rs *RuneSupplier) LastRune() rune {
	if rs.pos > 0 && rs.pos <= len(rs.code) {
		return rs.code[rs.pos-1]
	}
	return 0
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.lineNo++
		rs.lineStart = rs.pos + 1
	}
	rs.pos++
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

// Returns the line number and the column of the current rune, both counted from 1.
func (rs *RuneSupplier) Position() (int, int) {
	return rs.lineNo, rs.pos - rs.lineStart + 1
}

// Reads the digits of a number starting at the current rune, leaving the supplier on
// the last of them.
func (rs *RuneSupplier) ReadNumber() string {
	result := string(rs.CurrentRune())
	for IsDigit(rs.PeekRune()) {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

// Reads the digits following a radix prefix such as '0x'. The supplier should be on
// the '0'; it finishes on the last rune that could belong to the literal, so that a
// malformed literal such as 0b12 is swallowed whole and reported as one error.
func (rs *RuneSupplier) ReadRadixNumber() string {
	rs.Next()
	result := ""
	for IsAlphanumeric(rs.PeekRune()) {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

func (rs *RuneSupplier) ReadIdentifier() string {
	result := string(rs.CurrentRune()) // i.e. the character that suggested this was an identifier.
	for IsAlphanumeric(rs.PeekRune()) {
		rs.Next()
		result = result + string(rs.CurrentRune())
	}
	return result
}

// Reads a string literal, the supplier being on the opening quote. Returns the
// contents, the first bad escape if there was one, and whether the string was closed.
func (rs *RuneSupplier) ReadString() (string, rune, bool) {
	result := []rune{}
	var bad rune
	for {
		rs.Next()
		ch := rs.CurrentRune()
		if rs.AtEnd() {
			return string(result), bad, false
		}
		if ch == '"' {
			return string(result), bad, true
		}
		if ch == '\\' {
			rs.Next()
			if rs.AtEnd() {
				return string(result), bad, false
			}
			switch rs.CurrentRune() {
			case 'n':
				ch = '\n'
			case 't':
				ch = '\t'
			case '"':
				ch = '"'
			case '\\':
				ch = '\\'
			default:
				if bad == 0 {
					bad = rs.CurrentRune()
				}
				ch = rs.CurrentRune()
			}
		}
		result = append(result, ch)
	}
}

func IsLower(ch rune) bool {
	return 'a' <= ch && ch <= 'z'
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsAlphanumeric(ch rune) bool {
	return IsLower(ch) || IsDigit(ch) || ('A' <= ch && ch <= 'Z')
}

func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
