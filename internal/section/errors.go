package section

import "fmt"

// ConfigurationError reports an invalid segmenter setup: empty vocabulary,
// thresholds outside [0,1], or an override threshold below the base
// threshold. Detected eagerly when the segmenter is built, never per line.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "segmentation config: " + e.Reason
}

// ProviderError reports a similarity provider failure (call failed or
// returned an out-of-range score). It is fatal to the document being
// segmented: a zero score would be indistinguishable from a legitimate
// "no match", so the failure is surfaced instead of swallowed.
type ProviderError struct {
	Line string // The line being classified when the provider failed.
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("similarity provider: %v (line %q)", e.Err, e.Line)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
