package basesvc

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"eshop_backend/internal/common"
	"eshop_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipDefinition là một quan hệ khai báo bằng tag trên field _Relationships.
// Format: relationship:"collection:<tên>,field:<field tham chiếu>,message:<thông báo có %d>|..."
// Message không được chứa dấu phẩy.
type RelationshipDefinition struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// ParseRelationshipTag đọc các quan hệ khai báo trên struct
func ParseRelationshipTag(structType reflect.Type) []RelationshipDefinition {
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil
	}

	var relationships []RelationshipDefinition
	for i := 0; i < structType.NumField(); i++ {
		if tag := structType.Field(i).Tag.Get("relationship"); tag != "" {
			relationships = append(relationships, parseRelationshipTagValue(tag)...)
		}
	}
	return relationships
}

func parseRelationshipTagValue(tagValue string) []RelationshipDefinition {
	var relationships []RelationshipDefinition
	for _, part := range strings.Split(tagValue, "|") {
		rel := RelationshipDefinition{}
		for _, pair := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(pair), ":", 2)
			if len(kv) != 2 {
				continue
			}
			value := strings.TrimSpace(kv[1])
			switch strings.TrimSpace(kv[0]) {
			case "collection":
				rel.CollectionName = value
			case "field":
				rel.FieldName = value
			case "message", "msg":
				rel.ErrorMessage = value
			case "optional":
				rel.Optional = value == "true" || value == "1"
			}
		}
		if rel.CollectionName == "" || rel.FieldName == "" {
			continue
		}
		if rel.ErrorMessage == "" {
			rel.ErrorMessage = fmt.Sprintf("Không thể xóa vì có %%d bản ghi trong '%s' đang tham chiếu tới bản ghi này", rel.CollectionName)
		}
		relationships = append(relationships, rel)
	}
	return relationships
}

// CheckRelationshipExists trả về lỗi 409 nếu còn bản ghi tham chiếu tới recordID.
// Kiểm tra rồi mới xóa, không nằm trong transaction.
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, relationships []RelationshipDefinition) error {
	for _, rel := range relationships {
		collection, exists := global.RegistryCollections.Get(rel.CollectionName)
		if !exists {
			if rel.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", rel.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}

		count, err := collection.CountDocuments(ctx, bson.M{rel.FieldName: recordID})
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			return common.NewError(common.ErrCodeBusinessOperation, fmt.Sprintf(rel.ErrorMessage, count), common.StatusConflict, nil)
		}
	}
	return nil
}

func validateRelationshipsDelete(ctx context.Context, data interface{}) error {
	relationships := ParseRelationshipTag(reflect.TypeOf(data))
	if len(relationships) == 0 {
		return nil
	}
	recordID, ok := getIDFromModel(data)
	if !ok {
		return nil
	}
	return CheckRelationshipExists(ctx, recordID, relationships)
}
