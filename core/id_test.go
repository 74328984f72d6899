package core

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ulidPattern = regexp.MustCompile("^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$")

func TestNewID_Prefixes(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		expected string
	}{
		{name: "discord server", prefix: "ds", expected: "ds"},
		{name: "discord user account", prefix: "dua", expected: "dua"},
		{name: "organization", prefix: "org", expected: "org"},
		{name: "user", prefix: "u", expected: "u"},
		{name: "uppercase is lowercased", prefix: "ORG", expected: "org"},
		{name: "surrounding spaces are trimmed", prefix: "  dua  ", expected: "dua"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := NewID(tc.prefix)

			parts := strings.Split(id, "_")
			require.Len(t, parts, 2)
			assert.Equal(t, tc.expected, parts[0])
			assert.True(t, ulidPattern.MatchString(parts[1]), "unexpected ulid part %s", parts[1])

			_, err := ulid.Parse(parts[1])
			assert.NoError(t, err)
			assert.True(t, IsValidULID(id))
		})
	}
}

func TestNewID_EmptyPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "   ", "\t\t", " \t \n "} {
		assert.Panics(t, func() { NewID(prefix) }, "prefix %q", prefix)
	}
}

func TestNewID_SortedWithinSameMillisecond(t *testing.T) {
	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = NewID("ds")
	}

	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if i > 0 {
			assert.Less(t, ids[i-1], id, "ids must be strictly increasing")
		}
	}
}

func TestNewID_ConcurrentCallersStayUnique(t *testing.T) {
	const workers, perWorker = 8, 200

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []string
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, perWorker)
			for i := range local {
				local[i] = NewID("dua")
			}
			assert.True(t, sort.StringsAreSorted(local))
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	unique := make(map[string]struct{}, len(all))
	for _, id := range all {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, workers*perWorker)
}

func TestIsValidULID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		expected bool
	}{
		{name: "generated id", id: NewID("org"), expected: true},
		{name: "empty", id: "", expected: false},
		{name: "missing prefix", id: "_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "uppercase prefix", id: "ORG_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "short ulid", id: "org_01G0EZ1XTM", expected: false},
		{name: "invalid base32 character", id: "org_01G0EZ1XTM37C5X11SQTDNCTMI", expected: false},
		{name: "two separators", id: "org_x_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidULID(tc.id))
		})
	}
}
