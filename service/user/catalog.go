package user

import (
	"fmt"

	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/sashabaranov/go-openai"
)

// 工具参数 schema, 同时用于声明与参数校验
var toolSchemas = map[enum.ToolName]*jsonschema.Schema{
	enum.ToolSearchProducts: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"keyword":    {Type: "string", Description: "Từ khóa tên sản phẩm, ví dụ: iPhone 15, Galaxy A15"},
			"brand":      {Type: "string", Description: "Thương hiệu, ví dụ: Apple, Samsung, Xiaomi"},
			"price_min":  {Type: "number", Description: "Giá tối thiểu (VND)"},
			"price_max":  {Type: "number", Description: "Giá tối đa (VND)"},
			"ram_gb":     {Type: "number", Description: "RAM tối thiểu (GB)"},
			"storage_gb": {Type: "number", Description: "Bộ nhớ trong tối thiểu (GB)"},
			"color":      {Type: "string", Description: "Màu sắc mong muốn"},
			"capacity":   {Type: "string", Description: "Dung lượng mong muốn, ví dụ: 128GB"},
			"limit":      {Type: "number", Description: "Số sản phẩm tối đa (1-10, mặc định 3)"},
		},
	},
	enum.ToolCheckOrder: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"order_id":     {Type: "string", Description: "Mã đơn hàng, ví dụ: DH123"},
			"phone_number": {Type: "string", Description: "Số điện thoại đặt hàng (không bắt buộc)"},
		},
		Required: []string{"order_id"},
	},
}

var toolDescriptions = map[enum.ToolName]string{
	enum.ToolSearchProducts: "Tìm kiếm điện thoại theo từ khóa, thương hiệu, khoảng giá, RAM, bộ nhớ, màu sắc",
	enum.ToolCheckOrder:     "Kiểm tra trạng thái đơn hàng theo mã đơn",
}

// 声明顺序固定
var toolOrder = []enum.ToolName{enum.ToolSearchProducts, enum.ToolCheckOrder}

var (
	toolCatalog  []openai.Tool
	resolvedArgs = make(map[enum.ToolName]*jsonschema.Resolved, len(toolSchemas))
)

func init() {
	for _, name := range toolOrder {
		schema := toolSchemas[name]
		resolved, err := schema.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("工具 %s 的参数schema非法: %v", name, err))
		}
		resolvedArgs[name] = resolved
		toolCatalog = append(toolCatalog, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(name),
				Description: toolDescriptions[name],
				Parameters:  schema,
			},
		})
	}
}

// ToolCatalog 每次补全请求都附带的工具声明, 调用方不得修改
func ToolCatalog() []openai.Tool {
	return toolCatalog
}
