package task

import (
	"fmt"
	"os"
	"strings"

	"ursulacheck/internal/status"
	"ursulacheck/internal/textio"
)

// secretKey is the reserved manifest key that sets the signing secret.
const secretKey = "secret"

// LoadManifest reads the top-level checker manifest. Each line is
// "key:value"; lines without a colon or with an empty value are skipped.
// The reserved key "secret" may appear once; every other key names a task
// whose value is the path of its CSV file, loaded in place.
func LoadManifest(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, status.ErrBadParameters)
	}
	defer f.Close()

	set := &Set{}
	sc := textio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || value == "" {
			continue
		}

		if key == secretKey {
			if set.Secret != "" {
				return nil, fmt.Errorf("manifest %s: secret set twice: %w", path, status.ErrBadParameters)
			}
			set.Secret = textio.Clip(value)
			continue
		}

		t, err := LoadTaskFile(value, textio.Clip(key))
		if err != nil {
			return nil, fmt.Errorf("manifest %s: task %s: %w", path, key, err)
		}
		set.Tasks = append(set.Tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, status.ErrBadParameters)
	}

	return set, nil
}
