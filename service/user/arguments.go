package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/internal/mcp"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/utils"
)

// decodeArguments 将模型给出的参数(JSON字符串或对象)按工具 schema 修正, 校验后解码到 T
func decodeArguments[T any](name enum.ToolName, raw json.RawMessage) (T, error) {
	var out T

	normalized, err := unquoteArguments(raw)
	if err != nil {
		return out, err
	}

	coerced, err := mcp.CoerceArguments(normalized, toolSchemas[name])
	if err != nil {
		return out, err
	}

	var instance map[string]any
	if err := json.Unmarshal(coerced, &instance); err != nil {
		return out, fmt.Errorf("%s[o3fk6p]: %w", enum.MsgInvalidArguments, err)
	}
	if resolved, ok := resolvedArgs[name]; ok {
		if err := resolved.Validate(instance); err != nil {
			return out, fmt.Errorf("%s[zs9e1d]: %w", enum.MsgInvalidArguments, err)
		}
	}

	if err := json.Unmarshal(coerced, &out); err != nil {
		return out, fmt.Errorf("%s[q7wn4g]: %w", enum.MsgInvalidArguments, err)
	}
	return out, nil
}

// unquoteArguments 字符串形式的参数先解出内部JSON
func unquoteArguments(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return json.RawMessage(`{}`), nil
	}
	if !strings.HasPrefix(trimmed, `"`) {
		return json.RawMessage(trimmed), nil
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, fmt.Errorf("%s[l2ta8c]: %w", enum.MsgInvalidArguments, err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid([]byte(s)) {
		return nil, errors.New(string(enum.MsgInvalidArguments) + ": " + utils.TruncateRunes(s, 80))
	}
	return json.RawMessage(s), nil
}
