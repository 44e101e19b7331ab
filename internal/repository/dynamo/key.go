package dynamo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"reportapi/internal/repository"
)

// ErrInvalidKey is returned when a scan key token cannot be decoded.
var ErrInvalidKey = repository.ErrInvalidKey

// keyAttr is the JSON form of a key attribute. Key attributes can only be
// strings, numbers or binary.
type keyAttr struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// EncodeKey turns a LastEvaluatedKey into an opaque URL-safe token.
// An empty key gives an empty token.
func EncodeKey(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	out := make(map[string]keyAttr, len(key))
	for name, av := range key {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			s := v.Value
			out[name] = keyAttr{S: &s}
		case *types.AttributeValueMemberN:
			n := v.Value
			out[name] = keyAttr{N: &n}
		case *types.AttributeValueMemberB:
			out[name] = keyAttr{B: v.Value}
		default:
			return "", fmt.Errorf("%w: attribute %q has unsupported type %T", ErrInvalidKey, name, av)
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeKey reverses EncodeKey. An empty token gives a nil key.
func DecodeKey(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	var in map[string]keyAttr
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	key := make(map[string]types.AttributeValue, len(in))
	for name, a := range in {
		switch {
		case a.S != nil:
			key[name] = &types.AttributeValueMemberS{Value: *a.S}
		case a.N != nil:
			key[name] = &types.AttributeValueMemberN{Value: *a.N}
		case a.B != nil:
			key[name] = &types.AttributeValueMemberB{Value: a.B}
		default:
			return nil, fmt.Errorf("%w: attribute %q has no value", ErrInvalidKey, name)
		}
	}
	return key, nil
}
