package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
)

var seenStdin = false // Used to track that we don't try to read stdin twice

// ReadWords reads a sequence of whitespace-delimited words from the given reader.
func ReadWords(r io.Reader) ([]string, error) {
	var ret []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			ret = append(ret, s)
		}
	}
	return ret, scanner.Err()
}

// ReadAllStdin reads standard input in its entirety to a slice of words.
func ReadAllStdin() []string {
	if seenStdin {
		log.Fatalf("Repeated - on command line; can't reread stdin.")
	}
	seenStdin = true
	words, err := ReadWords(os.Stdin)
	if err != nil {
		log.Fatalf("Error reading stdin: %s", err)
	}
	return words
}

// StdinStrings is a type used for flags; it accepts a slice of strings but also
// if it's a single - it reads its contents from stdin.
type StdinStrings []string

// Get reads stdin if needed and returns the contents of this slice.
func (s StdinStrings) Get() []string {
	if len(s) == 1 && s[0] == "-" {
		return ReadAllStdin()
	} else if ContainsString("-", s) {
		log.Fatalf("Cannot pass - to read stdin along with other arguments.")
	}
	return s
}
