package mongoclient

import (
	"errors"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var (
	ErrNotPatchable = errors.New("patch must be a struct or a pointer to one")
)

// MakeBsonM turns a patch struct into the fields of a $set.
// Set pointer fields are dereferenced, so a pointer to a zero value still writes the zero value.
// Zero non-pointer fields and unset pointers are left out. A nil patch yields an empty map.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return bson.M{}, nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotPatchable
	}

	bsonM := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() || field.IsZero() {
			continue
		}

		tag, err := bsoncodec.DefaultStructTagParser(typ.Field(i))
		if err != nil {
			return nil, err
		} else if tag.Skip {
			continue
		}

		if field.Kind() == reflect.Ptr {
			bsonM[tag.Name] = field.Elem().Interface()
		} else {
			bsonM[tag.Name] = field.Interface()
		}
	}

	return bsonM, nil
}
