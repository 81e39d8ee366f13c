package service

import (
	"DMR_Link/internal/repo"
	"DMR_Link/model"
	"DMR_Link/utils"
	"context"
	"errors"
	"fmt"
)

// ErrInvalidDocumentType is returned for an unrecognized document-type token.
var ErrInvalidDocumentType = errors.New("invalid document type")

// Document-type tokens. Package and component records use the first spelling
// of each pair, manufacturing records the second.
const (
	DocTypeMSS    = "mss_msd_id"
	DocTypeMSSMfg = "mssmsd_id"
	DocTypeMI     = "mi_id"
	DocTypeQAS    = "qas"
	DocTypeQASMfg = "qas_id"
	DocTypePSS    = "pss_id"
)

// docTypeFields lists, per token, every field searched for it. Alias pairs are
// symmetric and the requested token is always queried first.
var docTypeFields = map[string][]string{
	DocTypeMSS:    {DocTypeMSS, DocTypeMSSMfg},
	DocTypeMSSMfg: {DocTypeMSSMfg, DocTypeMSS},
	DocTypeQAS:    {DocTypeQAS, DocTypeQASMfg},
	DocTypeQASMfg: {DocTypeQASMfg, DocTypeQAS},
	DocTypeMI:     {DocTypeMI},
	DocTypePSS:    {DocTypePSS},
}

// DocTypes returns every recognized document-type token.
func DocTypes() []string {
	return []string{DocTypeMSS, DocTypeMI, DocTypeQAS, DocTypePSS, DocTypeMSSMfg, DocTypeQASMfg}
}

// AliasFields returns the fields searched for a document type.
func AliasFields(docType string) ([]string, error) {
	fields, ok := docTypeFields[utils.NormalizeDocType(docType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDocumentType, docType)
	}
	return append([]string(nil), fields...), nil
}

// Resolver finds the parts that reference a document.
type Resolver struct {
	records repo.RecordStore
}

// NewResolver builds a resolver over the record store.
func NewResolver(records repo.RecordStore) *Resolver {
	return &Resolver{records: records}
}

// Resolve returns the part ids of every record whose aliased field contains
// the document number. Ids keep query order (for each field: package,
// manufacturing, component) and are not deduplicated.
// The classification is QAS-R when any match came from the component
// collection, QAS for other matches, and none when nothing matched.
func (r *Resolver) Resolve(ctx context.Context, docType, document string) ([]string, model.Classification, error) {
	fields, err := AliasFields(docType)
	if err != nil {
		return nil, model.ClassificationNone, err
	}
	document = utils.NormalizeDocument(document)
	if document == "" {
		return []string{}, model.ClassificationNone, nil
	}

	parts := []string{}
	fromComponent := false
	for _, field := range fields {
		for _, c := range model.Collections {
			records, err := r.records.FindMatching(ctx, c, field, document)
			if err != nil {
				return nil, model.ClassificationNone, fmt.Errorf("resolve %s=%s: %w", field, document, err)
			}
			for _, record := range records {
				parts = append(parts, record.Part)
			}
			if len(records) > 0 && c == model.CollectionComponent {
				fromComponent = true
			}
		}
	}

	classification := model.ClassificationNone
	switch {
	case fromComponent:
		classification = model.ClassificationQASR
	case len(parts) > 0:
		classification = model.ClassificationQAS
	}
	resolutionsTotal.WithLabelValues(classificationLabel(classification)).Inc()
	return parts, classification, nil
}

func classificationLabel(c model.Classification) string {
	if c == model.ClassificationNone {
		return "none"
	}
	return string(c)
}
