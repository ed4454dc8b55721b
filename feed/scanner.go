package feed

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Scanner streams valid commands out of a line-oriented reader,
// dropping malformed lines the way the wire protocol demands: count,
// log, continue with the next line.
type Scanner struct {
	sc      *bufio.Scanner
	log     *zap.Logger
	dropped int
}

func NewScanner(r io.Reader, log *zap.Logger) *Scanner {
	return &Scanner{
		sc:  bufio.NewScanner(r),
		log: log,
	}
}

// Next returns the next well-formed command, or false when the input
// is exhausted.
func (s *Scanner) Next() (Command, bool) {
	for s.sc.Scan() {
		line := strings.TrimRight(s.sc.Text(), "\r")
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			s.dropped++
			s.log.Debug("dropped malformed line",
				zap.String("line", line),
				zap.Error(err),
			)
			continue
		}
		return cmd, true
	}
	return nil, false
}

// Dropped is the number of malformed lines skipped so far.
func (s *Scanner) Dropped() int { return s.dropped }

// Err surfaces any underlying read error after Next returns false.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}
