package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

// Msg 返回给前端或回填给模型的文案, 店铺面向越南用户
type Msg string

const (
	MsgInvalidMessage   Msg = `Vui lòng gửi message dạng chuỗi.`
	MsgConnectFailed    Msg = `Không thể kết nối tới máy chủ AI. Vui lòng thử lại sau.`
	MsgModelFailed      Msg = `Máy chủ AI trả về lỗi (HTTP %d).`
	MsgModelBadResponse Msg = `Máy chủ AI trả về dữ liệu không hợp lệ.`
	MsgEmptyReply       Msg = `Không nhận được phản hồi từ trợ lý.`
	MsgChatFailed       Msg = `Đã xảy ra lỗi khi xử lý yêu cầu.`
	MsgNotFound         Msg = `Không tìm thấy`
	MsgToolUnsupported  Msg = `Tool không được hỗ trợ`
	MsgOrderNotFound    Msg = `Không tìm thấy đơn hàng.`
	MsgInvalidArguments Msg = `Tham số không hợp lệ`
)

// ConnectivityKeyword 旧版前端按错误文案中的该关键字判断是否为连接失败(503)
const ConnectivityKeyword = `kết nối`

type OrderStatusText string

const (
	OrderStatusNotFound OrderStatusText = `Không tìm thấy`
)

type HealthStatus string

const (
	HealthConnected    HealthStatus = `connected`
	HealthDisconnected HealthStatus = `disconnected`
)

type ToolName string

const (
	ToolSearchProducts ToolName = `searchProducts`
	ToolCheckOrder     ToolName = `checkOrder`
)

type LlmBackend string

const (
	BackendOllama LlmBackend = `ollama`
	BackendOpenAI LlmBackend = `openai`
)

type ProviderType string

const (
	ProviderNone ProviderType = ``
	ProviderDb   ProviderType = `db`
	ProviderMcp  ProviderType = `mcp`
)

type SystemPrompt string

const (
	SystemPromptDefault SystemPrompt = `Bạn là trợ lý chăm sóc khách hàng của Cellphone Shop, cửa hàng điện thoại di động.
- Luôn trả lời bằng tiếng Việt, ngắn gọn, thân thiện và chính xác.
- Khi khách hỏi về sản phẩm, giá, cấu hình (RAM, bộ nhớ), màu sắc hoặc thương hiệu, hãy gọi công cụ "searchProducts".
- Khi khách hỏi về tình trạng đơn hàng, hãy gọi công cụ "checkOrder" với mã đơn hàng (và số điện thoại nếu khách cung cấp).
- Chỉ sử dụng dữ liệu do công cụ trả về; không tự bịa ra sản phẩm, giá hoặc trạng thái đơn hàng.
- Khi giới thiệu sản phẩm, nêu tên, giá bán, mức giảm giá (nếu có) và đường dẫn chi tiết.
- Nếu công cụ báo lỗi hoặc không có kết quả, hãy xin lỗi và gợi ý khách cung cấp thêm thông tin.`
	SystemPromptPing SystemPrompt = `Bạn là trợ lý ảo của Cellphone Shop. Trả lời ngắn gọn.`
)

// PingMessage 用于 /api/chat/test 的固定用户消息
const PingMessage = `Xin chào`
