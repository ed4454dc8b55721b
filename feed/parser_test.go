package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lob/domain/book"
)

func TestParseAddOrder(t *testing.T) {
	cmd, err := Parse("28800538,A,ab1,B,100,ABC,1000000")
	require.NoError(t, err)
	require.Equal(t, AddOrder{
		ID:     "ab1",
		Side:   book.Bid,
		Symbol: "ABC",
		Shares: 100,
		Price:  1000000,
	}, cmd)

	cmd, err = Parse("28800539,A,ab2,S,50,XYZ,1010000")
	require.NoError(t, err)
	require.Equal(t, book.Ask, cmd.(AddOrder).Side)
}

func TestParseExecuteAndCancel(t *testing.T) {
	cmd, err := Parse("28800600,E,ab1,30,m77")
	require.NoError(t, err)
	require.Equal(t, Execute{ID: "ab1", Shares: 30, MatchID: "m77"}, cmd)

	cmd, err = Parse("28800601,C,ab1,70")
	require.NoError(t, err)
	require.Equal(t, Cancel{ID: "ab1", Shares: 70}, cmd)
}

func TestParseQueries(t *testing.T) {
	for line, want := range map[string]Command{
		"SHOW,BBO":          QueryBestBidOffer{},
		"SHOW,HIGHEST":      QueryHighestSymbolDepth{},
		"SHOW,TOTAL,SHARES": QueryTotals{Kind: TotalShares},
		"SHOW,TOTAL,EXECS":  QueryTotals{Kind: TotalExecutions},
		"SHOW,LEVEL,B,3":    QueryLevel{Side: book.Bid, N: 3},
		"SHOW,LEVEL,S,1":    QueryLevel{Side: book.Ask, N: 1},
		"QUIT":              Terminate{},
	} {
		cmd, err := Parse(line)
		require.NoError(t, err, line)
		require.Equal(t, want, cmd, line)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	lines := []string{
		"",                                   // empty
		"28800538,A,ab1,B,100,ABC",           // wrong field count
		"28800538,A,ab1,X,100,ABC,1000000",   // bad side
		"28800538,A,ab1,B,0,ABC,1000000",     // zero shares
		"28800538,A,ab1,B,-5,ABC,1000000",    // negative shares
		"28800538,A,ab1,B,ten,ABC,1000000",   // non-numeric shares
		"28800538,A,ab1,B,100,ABC,12.5",      // non-numeric price
		"28800538,A,toolongid12,B,1,ABC,100", // 11-char ID
		"28800538,A,a,B,1,SYMBOLTOO,100",     // 9-char symbol
		"ts,A,ab1,B,100,ABC,1000000",         // non-numeric timestamp
		"28800600,E,ab1,30",                  // E short a field
		"28800601,C,ab1",                     // C short a field
		"28800601,Z,ab1,1",                   // unknown action
		"SHOW,LEVEL,B,0",                     // level below 1
		"SHOW,LEVEL,Q,1",                     // bad side
		"SHOW,TOTAL,TRADES",                  // unknown counter
		"SHOW,NOPE",                          // unknown subject
		"QUIT,now",                           // trailing field
	}
	for _, line := range lines {
		_, err := Parse(line)
		require.ErrorIs(t, err, ErrMalformed, "line %q", line)
	}
}

func TestScannerSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"28800538,A,ab1,B,100,ABC,1000000",
		"garbage line",
		"",
		"28800600,E,ab1,30,m77",
		"QUIT",
	}, "\n")

	sc := NewScanner(strings.NewReader(input), zap.NewNop())

	var got []Command
	for {
		cmd, ok := sc.Next()
		if !ok {
			break
		}
		got = append(got, cmd)
	}

	require.Len(t, got, 3)
	require.IsType(t, AddOrder{}, got[0])
	require.IsType(t, Execute{}, got[1])
	require.IsType(t, Terminate{}, got[2])
	require.Equal(t, 1, sc.Dropped())
	require.NoError(t, sc.Err())
}
