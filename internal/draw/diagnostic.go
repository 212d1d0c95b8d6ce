package draw

import "fmt"

// Level is the severity of a diagnostic
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Diagnostic is a non-fatal event raised while extracting or validating a result
type Diagnostic struct {
	Level   Level  `json:"level" yaml:"level"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Level, d.Field, d.Message)
}

// Diagnostics collects diagnostics in the order they were raised
type Diagnostics []Diagnostic

// Infof records an informational diagnostic for field
func (d *Diagnostics) Infof(field, format string, args ...interface{}) {
	d.add(LevelInfo, field, format, args...)
}

// Warnf records a warning for field
func (d *Diagnostics) Warnf(field, format string, args ...interface{}) {
	d.add(LevelWarn, field, format, args...)
}

// Errorf records an error for field
func (d *Diagnostics) Errorf(field, format string, args ...interface{}) {
	d.add(LevelError, field, format, args...)
}

func (d *Diagnostics) add(level Level, field, format string, args ...interface{}) {
	*d = append(*d, Diagnostic{Level: level, Field: field, Message: fmt.Sprintf(format, args...)})
}
