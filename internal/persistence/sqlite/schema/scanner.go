package schema

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// fileScanner implements FileScanner over an fs.FS.
type fileScanner struct {
	pattern *regexp.Regexp
}

// NewFileScanner creates a FileScanner for {version}_{description}.sql files.
func NewFileScanner() FileScanner {
	return &fileScanner{
		pattern: regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_-]+)\.sql$`),
	}
}

// ScanScripts reads every .sql file in dir and returns them ordered by version.
func (s *fileScanner) ScanScripts(fsys fs.FS, dir string) ([]Script, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, NewSchemaError(0, dir, "read directory", err)
	}

	var scripts []Script
	seen := make(map[int]string)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		script, err := s.ParseScriptFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		if existing, ok := seen[script.Version]; ok {
			return nil, NewSchemaError(script.Version, script.FilePath, "check duplicates",
				fmt.Errorf("%w: version %d found in both %s and %s", ErrDuplicateVersion, script.Version, existing, entry.Name()))
		}
		seen[script.Version] = entry.Name()

		scripts = append(scripts, *script)
	}

	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Version < scripts[j].Version
	})

	return scripts, nil
}

// ValidateFileName checks if a script file follows the naming convention
func (s *fileScanner) ValidateFileName(filename string) error {
	matches := s.pattern.FindStringSubmatch(filename)
	if len(matches) != 3 {
		return fmt.Errorf("%w: filename '%s' does not match pattern '{version}_{description}.sql'",
			ErrInvalidSchemaFile, filename)
	}

	version, err := strconv.Atoi(matches[1])
	if err != nil || version <= 0 {
		return fmt.Errorf("%w: version '%s' in filename '%s' must be a positive number",
			ErrInvalidVersion, matches[1], filename)
	}

	return nil
}

// ParseScriptFile reads a script and validates its name and content.
func (s *fileScanner) ParseScriptFile(fsys fs.FS, filePath string) (*Script, error) {
	filename := path.Base(filePath)
	if err := s.ValidateFileName(filename); err != nil {
		return nil, NewSchemaError(0, filePath, "validate filename", err)
	}

	matches := s.pattern.FindStringSubmatch(filename)
	version, _ := strconv.Atoi(matches[1])

	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, NewSchemaError(version, filePath, "read file", err)
	}

	sql := string(content)
	if strings.TrimSpace(sql) == "" {
		return nil, NewSchemaError(version, filePath, "validate content",
			fmt.Errorf("%w: schema file is empty", ErrInvalidSchemaFile))
	}

	if err := validateSQL(sql); err != nil {
		return nil, NewSchemaError(version, filePath, "validate SQL", err)
	}

	description := descriptionFromContent(sql)
	if description == "" {
		description = strings.ReplaceAll(matches[2], "_", " ")
	}

	return &Script{
		Version:     version,
		Description: description,
		SQL:         sql,
		FilePath:    filePath,
		Checksum:    fmt.Sprintf("%x", sha256.Sum256(content)),
	}, nil
}

// Latest returns the script with the highest version.
func Latest(scripts []Script) (Script, error) {
	if len(scripts) == 0 {
		return Script{}, ErrNoScripts
	}
	latest := scripts[0]
	for _, script := range scripts[1:] {
		if script.Version > latest.Version {
			latest = script
		}
	}
	return latest, nil
}

func validateSQL(sql string) error {
	clean := stripComments(sql)
	if strings.TrimSpace(clean) == "" {
		return fmt.Errorf("%w: no SQL statements found after removing comments", ErrInvalidSchemaFile)
	}

	depth := 0
	inString := false
	for _, char := range clean {
		switch {
		case char == '\'':
			inString = !inString
		case inString:
		case char == '(':
			depth++
		case char == ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unmatched closing parenthesis", ErrInvalidSchemaFile)
			}
		}
	}

	if inString {
		return fmt.Errorf("%w: unterminated string literal", ErrInvalidSchemaFile)
	}
	if depth != 0 {
		return fmt.Errorf("%w: unmatched opening parenthesis", ErrInvalidSchemaFile)
	}
	return nil
}

func stripComments(sql string) string {
	lines := strings.Split(sql, "\n")
	clean := make([]string, 0, len(lines))
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx != -1 {
			line = line[:idx]
		}
		if line = strings.TrimSpace(line); line != "" {
			clean = append(clean, line)
		}
	}
	return strings.Join(clean, "\n")
}

// descriptionFromContent returns the text of a leading "-- Description:" comment.
func descriptionFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "--") {
			break
		}
		if rest, ok := strings.CutPrefix(line, "-- Description:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// splitStatements splits script content into individual statements, dropping
// comment-only fragments.
func splitStatements(sql string) []string {
	var statements []string
	for _, stmt := range strings.Split(stripComments(sql), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// IsSchemaError reports whether err came from script handling.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}
