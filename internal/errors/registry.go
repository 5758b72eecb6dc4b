package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No coursebook.json was found in the given directory.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "coursebook.json could not be read or is not valid JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid server port",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid debounce delay",
		Detail:   "Debounce delays must not be negative.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Conflicting catalog sources",
		Detail:   "Only one of catalog.path and catalog.s3 may be set.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid log configuration",
	},

	// ============================================
	// Catalog Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryCatalog,
		Message:  "Catalog load failed",
	},
	"E201": {
		Category: CategoryCatalog,
		Message:  "Catalog is not valid JSON",
	},
	"E202": {
		Category: CategoryCatalog,
		Message:  "Invalid course record",
	},
	"E203": {
		Category: CategoryCatalog,
		Message:  "Catalog fetch from S3 failed",
	},

	// ============================================
	// Request Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryRequest,
		Message:  "Invalid request parameter",
	},
	"E301": {
		Category: CategoryNotFound,
		Message:  "Course not found",
	},
	"E302": {
		Category: CategoryInternal,
		Message:  "Search failed",
	},

	// ============================================
	// Live Session Errors (E400-E419)
	// ============================================

	"E400": {
		Category: CategoryProtocol,
		Message:  "Malformed live session message",
	},
	"E401": {
		Category: CategoryProtocol,
		Message:  "Unknown live session operation",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
