package keyset

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm/schema"
)

// TypeFunc answers "what column type does field F on entity E have?" (spec
// §1(b), the row-type reflection collaborator). The default implementation
// below is built directly on gorm.io/gorm/schema -- the same struct-tag
// parser GORM itself uses to map Go fields to columns -- so a caller who
// already tags their models for GORM gets correct TypeTags for free.
type TypeFunc func(model any, ref FieldRef) (TypeTag, error)

var schemaCache sync.Map

func parseSchema(model any) (*schema.Schema, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("keyset: parsing schema for %T: %w", model, err)
	}
	return s, nil
}

// DefaultTypeFunc resolves a field's TypeTag from the root model's GORM
// schema for unbound fields, or by walking one association hop for bound
// fields (spec §4.2). rootModel is a zero-value instance (or pointer to
// one) of the entity the query selects from.
func DefaultTypeFunc(rootModel any) TypeFunc {
	return func(_ any, ref FieldRef) (TypeTag, error) {
		s, err := parseSchema(rootModel)
		if err != nil {
			return "", err
		}

		if ref.Binding != "" {
			rel, ok := s.Relationships.Relations[ref.Binding]
			if !ok {
				known := lo.Keys(s.Relationships.Relations)
				return "", &UnknownBindingError{Name: ref.Binding, Known: known, Closest: closestAlias(ref.Binding, known)}
			}
			assocSchema, err := parseSchema(reflect.New(rel.FieldSchema.ModelType).Interface())
			if err != nil {
				return "", err
			}
			return typeTagForField(assocSchema, ref.Column)
		}

		return typeTagForField(s, ref.Column)
	}
}

func typeTagForField(s *schema.Schema, column string) (TypeTag, error) {
	field, ok := s.FieldsByDBName[column]
	if !ok {
		return "", fmt.Errorf("keyset: %s has no column %q", s.Table, column)
	}

	if field.PrimaryKey {
		return TypeID, nil
	}

	if field.FieldType == reflect.TypeOf(time.Time{}) || field.FieldType == reflect.TypeOf(&time.Time{}) {
		return TypeUTCDatetimeSeconds, nil
	}

	switch field.FieldType.Kind() {
	case reflect.Bool:
		return TypeBoolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger, nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, nil
	case reflect.String:
		return TypeString, nil
	case reflect.Slice:
		if field.FieldType.Elem().Kind() == reflect.Uint8 {
			return TypeBinary, nil
		}
	}

	return "", fmt.Errorf("keyset: cannot infer TypeTag for %s.%s (%s); set it explicitly with WithType", s.Table, column, field.FieldType)
}
