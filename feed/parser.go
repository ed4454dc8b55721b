package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lob/domain/book"
)

// Field-shape limits from the wire format.
const (
	MaxIDLen     = 10
	MaxSymbolLen = 8
)

// ErrMalformed marks a dropped line. The processor never sees these;
// callers count and move on.
var ErrMalformed = errors.New("feed: malformed line")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Parse tokenizes one comma-separated line into a Command.
//
// Grammar:
//
//	<ts>,A,<id>,B|S,<shares>,<symbol>,<price>
//	<ts>,E,<id>,<shares>,<matchID>
//	<ts>,C,<id>,<shares>
//	SHOW,BBO
//	SHOW,TOTAL,SHARES|EXECS
//	SHOW,LEVEL,B|S,<n>
//	SHOW,HIGHEST
//	QUIT
func Parse(line string) (Command, error) {
	fields := strings.Split(line, ",")

	switch fields[0] {
	case "QUIT":
		if len(fields) != 1 {
			return nil, malformed("QUIT takes no fields")
		}
		return Terminate{}, nil
	case "SHOW":
		return parseShow(fields)
	}

	if len(fields) < 2 {
		return nil, malformed("missing action field")
	}
	if !isDigits(fields[0]) {
		return nil, malformed("non-numeric timestamp %q", fields[0])
	}

	switch fields[1] {
	case "A":
		return parseAdd(fields)
	case "E":
		return parseExecute(fields)
	case "C":
		return parseCancel(fields)
	}
	return nil, malformed("unknown action %q", fields[1])
}

func parseAdd(fields []string) (Command, error) {
	if len(fields) != 7 {
		return nil, malformed("A wants 7 fields, got %d", len(fields))
	}
	id, err := parseOrderID(fields[2])
	if err != nil {
		return nil, err
	}
	side, err := parseSide(fields[3])
	if err != nil {
		return nil, err
	}
	shares, err := parseShares(fields[4])
	if err != nil {
		return nil, err
	}
	symbol := fields[5]
	if symbol == "" || len(symbol) > MaxSymbolLen {
		return nil, malformed("bad symbol %q", symbol)
	}
	if !isDigits(fields[6]) {
		return nil, malformed("non-numeric price %q", fields[6])
	}
	price, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil || price <= 0 {
		return nil, malformed("bad price %q", fields[6])
	}
	return AddOrder{ID: id, Side: side, Symbol: symbol, Shares: shares, Price: price}, nil
}

func parseExecute(fields []string) (Command, error) {
	if len(fields) != 5 {
		return nil, malformed("E wants 5 fields, got %d", len(fields))
	}
	id, err := parseOrderID(fields[2])
	if err != nil {
		return nil, err
	}
	shares, err := parseShares(fields[3])
	if err != nil {
		return nil, err
	}
	if fields[4] == "" {
		return nil, malformed("empty match ID")
	}
	return Execute{ID: id, Shares: shares, MatchID: fields[4]}, nil
}

func parseCancel(fields []string) (Command, error) {
	if len(fields) != 4 {
		return nil, malformed("C wants 4 fields, got %d", len(fields))
	}
	id, err := parseOrderID(fields[2])
	if err != nil {
		return nil, err
	}
	shares, err := parseShares(fields[3])
	if err != nil {
		return nil, err
	}
	return Cancel{ID: id, Shares: shares}, nil
}

func parseShow(fields []string) (Command, error) {
	if len(fields) < 2 {
		return nil, malformed("SHOW wants a subject")
	}
	switch fields[1] {
	case "BBO":
		if len(fields) != 2 {
			return nil, malformed("SHOW,BBO takes no extra fields")
		}
		return QueryBestBidOffer{}, nil
	case "HIGHEST":
		if len(fields) != 2 {
			return nil, malformed("SHOW,HIGHEST takes no extra fields")
		}
		return QueryHighestSymbolDepth{}, nil
	case "TOTAL":
		if len(fields) != 3 {
			return nil, malformed("SHOW,TOTAL wants a counter name")
		}
		switch fields[2] {
		case "SHARES":
			return QueryTotals{Kind: TotalShares}, nil
		case "EXECS":
			return QueryTotals{Kind: TotalExecutions}, nil
		}
		return nil, malformed("unknown counter %q", fields[2])
	case "LEVEL":
		if len(fields) != 4 {
			return nil, malformed("SHOW,LEVEL wants side and depth")
		}
		side, err := parseSide(fields[2])
		if err != nil {
			return nil, err
		}
		if !isDigits(fields[3]) {
			return nil, malformed("non-numeric level %q", fields[3])
		}
		n, err := strconv.Atoi(fields[3])
		if err != nil || n < 1 {
			return nil, malformed("bad level %q", fields[3])
		}
		return QueryLevel{Side: side, N: n}, nil
	}
	return nil, malformed("unknown SHOW subject %q", fields[1])
}

func parseOrderID(s string) (string, error) {
	if s == "" || len(s) > MaxIDLen {
		return "", malformed("bad order ID %q", s)
	}
	return s, nil
}

func parseSide(s string) (book.Side, error) {
	switch s {
	case "B":
		return book.Bid, nil
	case "S":
		return book.Ask, nil
	}
	return 0, malformed("bad side %q", s)
}

func parseShares(s string) (int64, error) {
	if !isDigits(s) {
		return 0, malformed("non-numeric shares %q", s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, malformed("bad share count %q", s)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
