package scenario

import (
	"fmt"
	"strings"

	"github.com/vinayprograms/heartbeatkit/errors"
)

// Name identifies a scenario.
type Name string

const (
	Normal        Name = "normal"
	CrashPeriodic Name = "crash_periodic"
	Hang          Name = "hang"
	SigtermTest   Name = "sigterm_test"
	LongRequest   Name = "long_request"
)

// Names lists every scenario in a stable order.
var Names = []Name{Normal, CrashPeriodic, Hang, SigtermTest, LongRequest}

var descriptions = map[Name]string{
	Normal:        "healthy workload, jittered beats for the duration",
	CrashPeriodic: "jittered beats with a random crash after each cycle",
	Hang:          "a few beats, then alive but silent forever",
	SigtermTest:   "steady beats until a termination signal",
	LongRequest:   "one beat, a blocking pause for the duration, one beat",
}

// Description returns a one-line summary of the scenario.
func (n Name) Description() string {
	return descriptions[n]
}

// Valid reports whether n is a known scenario.
func (n Name) Valid() bool {
	_, ok := descriptions[n]
	return ok
}

func (n Name) String() string {
	return string(n)
}

// ParseName resolves a scenario name. Matching is exact: scenario names
// are part of the CLI contract with the supervisor's test suite.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.Valid() {
		known := make([]string, len(Names))
		for i, name := range Names {
			known[i] = string(name)
		}
		return "", errors.InvalidInput(fmt.Sprintf("unknown scenario %q", s),
			errors.WithMetadata("scenario", s),
			errors.WithMetadata("known", strings.Join(known, ",")),
		)
	}
	return n, nil
}
