package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển đổi một struct sang map[string]interface{} qua vòng
// marshal/unmarshal BSON, giữ nguyên tên field theo bson tag.
func ToMap(data interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}
