package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"` // 为空则不连接数据库
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
	AutoMigrate   bool   `json:"auto_migrate" mapstructure:"auto_migrate" yaml:"auto_migrate"`
}

type Redis struct {
	Addr     string `json:"addr" mapstructure:"addr" yaml:"addr"` // 为空则不启用缓存
	Password string `json:"password" mapstructure:"password" yaml:"password"`
	DB       uint   `json:"db" mapstructure:"db" yaml:"db"`
}

// Ollama 模型服务配置, backend=openai 时走 /v1 兼容接口
type Ollama struct {
	Url         string  `json:"url" mapstructure:"url" yaml:"url"`
	Model       string  `json:"model" mapstructure:"model" yaml:"model"`
	Backend     string  `json:"backend" mapstructure:"backend" yaml:"backend"`
	Auth        string  `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout     int64   `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	Temperature float32 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
	TopP        float32 `json:"top_p" mapstructure:"top_p" yaml:"top_p"`
}

type Store struct {
	ApiBaseUrl string `json:"api_base_url" mapstructure:"api_base_url" yaml:"api_base_url"`
	WebBaseUrl string `json:"web_base_url" mapstructure:"web_base_url" yaml:"web_base_url"`
	Timeout    int64  `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	CacheTTL   int64  `json:"cache_ttl" mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

type Chat struct {
	MaxMessageLength   int    `json:"max_message_length" mapstructure:"max_message_length" yaml:"max_message_length"`
	SystemPrompt       string `json:"system_prompt" mapstructure:"system_prompt" yaml:"system_prompt"`
	DefaultSearchLimit int    `json:"default_search_limit" mapstructure:"default_search_limit" yaml:"default_search_limit"`
	MaxSearchLimit     int    `json:"max_search_limit" mapstructure:"max_search_limit" yaml:"max_search_limit"`
}

// Providers 工具数据来源: product 可选 db; order 可选 db, mcp; 为空则不注入
type Providers struct {
	Product string `json:"product" mapstructure:"product" yaml:"product"`
	Order   string `json:"order" mapstructure:"order" yaml:"order"`
}

type Mcp struct {
	Url       string `json:"url" mapstructure:"url" yaml:"url"`
	Auth      string `json:"auth" mapstructure:"auth" yaml:"auth"`
	OrderTool string `json:"order_tool" mapstructure:"order_tool" yaml:"order_tool"`
}

type Oss struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint"`
	Bucket          string `json:"bucket" mapstructure:"bucket" yaml:"bucket"`
	AccessKeyId     string `json:"access_key_id" mapstructure:"access_key_id" yaml:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret" yaml:"access_key_secret"`
	CdnDomain       string `json:"cdn_domain" mapstructure:"cdn_domain" yaml:"cdn_domain"`
	StoragePath     string `json:"storage_path" mapstructure:"storage_path" yaml:"storage_path"`
	SignExpiry      int64  `json:"sign_expiry" mapstructure:"sign_expiry" yaml:"sign_expiry"` // 大于0时生成签名URL(私有bucket)
}
