package utility

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectIDs chuyển danh sách chuỗi phân cách bởi dấu phẩy thành ObjectID.
// Phần tử rỗng bị bỏ qua; phần tử sai định dạng trả về lỗi.
func ParseObjectIDs(csv string) ([]primitive.ObjectID, error) {
	parts := SplitAndTrim(csv, ",")
	ids := make([]primitive.ObjectID, 0, len(parts))
	for _, part := range parts {
		id, err := primitive.ObjectIDFromHex(part)
		if err != nil {
			return nil, fmt.Errorf("invalid object id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SplitAndTrim tách chuỗi theo sep và bỏ khoảng trắng, bỏ phần tử rỗng
func SplitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// UnixMilli trả về thời gian dạng milliseconds
func UnixMilli(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// CurrentTimeInMilli trả về thời gian hiện tại dạng milliseconds
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}
