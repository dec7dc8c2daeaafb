package config

import "fmt"

// Merge combines two configs where overlay takes precedence over base:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - scalars (input, output, format, quality, lossless, workers, skip): overlay wins when set
//   - extensions: overlay replaces base when non-empty
//   - exclude: concatenate (base first, then overlay), duplicates dropped
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := *base

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	if overlay.Input != "" {
		result.Input = overlay.Input
	}
	if overlay.Output != "" {
		result.Output = overlay.Output
	}
	if overlay.Format != "" {
		result.Format = overlay.Format
	}
	if overlay.Quality != nil {
		q := *overlay.Quality
		result.Quality = &q
	}
	if overlay.Lossless != nil {
		l := *overlay.Lossless
		result.Lossless = &l
	}
	if overlay.Workers != 0 {
		result.Workers = overlay.Workers
	}
	if overlay.Skip != "" {
		result.Skip = overlay.Skip
	}

	if len(overlay.Extensions) > 0 {
		result.Extensions = append([]string(nil), overlay.Extensions...)
	} else {
		result.Extensions = append([]string(nil), base.Extensions...)
	}

	result.Exclude = mergeExclude(base.Exclude, overlay.Exclude)

	return &result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

func mergeExclude(base, overlay []string) []string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(base)+len(overlay))
	var result []string
	for _, list := range [][]string{base, overlay} {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
