package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// Builder error codes, one per elmen.Kind.
const (
	CodeTypeKind           = "E001"
	CodeMissingField       = "E002"
	CodeMalformedArguments = "E003"
	CodeFinalized          = "E004"
	CodeHostFailure        = "E005"
)

// Markup, configuration and CLI error codes.
const (
	CodeMarkupSyntax   = "E100"
	CodeMarkupInvalid  = "E101"
	CodeConfigInvalid  = "E120"
	CodeConfigValue    = "E121"
	CodeConfigNotFound = "E122"
	CodeInputNotFound  = "E140"
	CodeRenderFailed   = "E141"
	CodeOutputFailed   = "E142"
	CodeMetricsFailed  = "E143"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Builder Errors (E001-E099)
	// ============================================

	CodeTypeKind: {
		Category:   CategoryBuilder,
		Message:    "Unsupported argument type",
		Detail:     "A builder call received a value whose type it cannot use, such as an object as a child or a number as an event type.",
		Suggestion: "Pass strings, numbers, booleans, elements or nested descriptions.",
		DocURL:     "https://elmen.dev/docs/errors/E001",
	},
	CodeMissingField: {
		Category:   CategoryBuilder,
		Message:    "Missing required field",
		Detail:     "A listener entry has no type or no listener, or names a listener or action that is not registered.",
		Suggestion: `Listener entries need both "type" and "listener".`,
		DocURL:     "https://elmen.dev/docs/errors/E002",
	},
	CodeMalformedArguments: {
		Category:   CategoryBuilder,
		Message:    "Malformed CSS arguments",
		Detail:     "Flat CSS lists must hold property/value pairs, and rows must have two or three elements.",
		Suggestion: `Use [["color", "red", "important"]] rows to give a priority.`,
		DocURL:     "https://elmen.dev/docs/errors/E003",
	},
	CodeFinalized: {
		Category: CategoryBuilder,
		Message:  "Builder already finalized",
		Detail:   "Done was called on the builder before, or the builder was already appended as a child.",
		DocURL:   "https://elmen.dev/docs/errors/E004",
	},
	CodeHostFailure: {
		Category: CategoryBuilder,
		Message:  "Host rejected the operation",
		Detail:   "The document refused a tag name, attribute name, class token or append.",
		DocURL:   "https://elmen.dev/docs/errors/E005",
	},

	// ============================================
	// Markup Errors (E100-E119)
	// ============================================

	CodeMarkupSyntax: {
		Category: CategoryMarkup,
		Message:  "Invalid JSON",
		Detail:   "The element description is not valid JSON.",
		DocURL:   "https://elmen.dev/docs/errors/E100",
	},
	CodeMarkupInvalid: {
		Category: CategoryMarkup,
		Message:  "Invalid element description",
		Detail:   "A field of the element description has the wrong shape.",
		DocURL:   "https://elmen.dev/docs/errors/E101",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid elmen.json",
		Detail:   "The elmen.json configuration file is malformed.",
		DocURL:   "https://elmen.dev/docs/errors/E120",
	},
	CodeConfigValue: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
		DocURL:   "https://elmen.dev/docs/errors/E121",
	},
	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Configuration not found",
		Detail:     "No elmen.json was found.",
		Suggestion: "Create elmen.json or pass --config.",
		DocURL:     "https://elmen.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	CodeInputNotFound: {
		Category: CategoryCLI,
		Message:  "Input file not found",
		Detail:   "The element description file does not exist or cannot be read.",
		DocURL:   "https://elmen.dev/docs/errors/E140",
	},
	CodeRenderFailed: {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "The built element could not be serialized to HTML.",
		DocURL:   "https://elmen.dev/docs/errors/E141",
	},
	CodeOutputFailed: {
		Category: CategoryCLI,
		Message:  "Cannot write output",
		DocURL:   "https://elmen.dev/docs/errors/E142",
	},
	CodeMetricsFailed: {
		Category: CategoryCLI,
		Message:  "Cannot gather metrics",
		DocURL:   "https://elmen.dev/docs/errors/E143",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
