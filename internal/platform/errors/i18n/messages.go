package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown            = "UNKNOWN"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeCountOutOfRange    = "COUNT_OUT_OF_RANGE"
	CodeInvalidKind        = "INVALID_KIND"
	CodeNotFound           = "NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeCatalogInvalid     = "CATALOG_INVALID"
)

var enUS = map[Code]string{
	CodeUnknown:            "an unexpected error occurred",
	CodeInvalidArgument:    "invalid request: {{.Reason}}",
	CodeCountOutOfRange:    "count {{.Count}} must be between 1 and {{.Max}}",
	CodeInvalidKind:        "unknown kind {{.Kind}}; expected one of {{.Kinds}}",
	CodeNotFound:           "{{.Resource}} {{.ID}} was not found",
	CodeStorageUnavailable: "the lore catalog is unavailable, try again later",
	CodeCatalogInvalid:     "catalog entry {{.Entry}} is invalid: {{.Reason}}",
}

var frFR = map[Code]string{
	CodeUnknown:            "une erreur inattendue est survenue",
	CodeInvalidArgument:    "requête invalide : {{.Reason}}",
	CodeCountOutOfRange:    "le nombre {{.Count}} doit être compris entre 1 et {{.Max}}",
	CodeInvalidKind:        "type {{.Kind}} inconnu ; valeurs possibles : {{.Kinds}}",
	CodeNotFound:           "{{.Resource}} {{.ID}} introuvable",
	CodeStorageUnavailable: "le catalogue est indisponible, réessayez plus tard",
	CodeCatalogInvalid:     "l'entrée {{.Entry}} du catalogue est invalide : {{.Reason}}",
}
