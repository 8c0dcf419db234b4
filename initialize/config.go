package initialize

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/task"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

// 配置项与环境变量的对应关系, 同一配置项按顺序取第一个非空的环境变量
var envBindings = map[string][]string{
	"ollama.url":         {"OLLAMA_URL"},
	"ollama.model":       {"OLLAMA_MODEL"},
	"store.api_base_url": {"STORE_API_BASE_URL"},
	"store.web_base_url": {"STORE_WEB_BASE_URL", "CLIENT_URL"},
	"port":               {"PORT"},
}

const reloadDelay = 500 * time.Millisecond

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "probe": 探测模型服务; "clean": 清理过期日志; "seed": 写入演示数据;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	i := &Initializer{}

	v, c, err := loadConfig(configPath)
	if err != nil {
		panic("读取配置失败[u9ij]: " + err.Error())
	}
	global.SetConfig(c)

	if utils.FileExist(configPath) {
		v.OnConfigChange(func(e fsnotify.Event) {
			task.Debounce("config", reloadDelay, func() {
				i.reloadConfig(v, e.Name)
			})
		})
		v.WatchConfig()
	}

	return i
}

// loadConfig 读取配置文件(不存在时只使用环境变量和默认值), 并完成默认值处理与校验
func loadConfig(configPath string) (*viper.Viper, *config.Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, nil, fmt.Errorf("绑定环境变量失败[x2h8lc]: %w", err)
		}
	}

	if utils.FileExist(configPath) {
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", configPath, err)
		}
	}

	c, err := unmarshalConfig(v)
	if err != nil {
		return nil, nil, err
	}
	return v, c, nil
}

func unmarshalConfig(v *viper.Viper) (*config.Config, error) {
	c := new(config.Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("出错[dhfal]: %w", err)
	}
	handleConfig(c)
	if err := checkConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (i *Initializer) reloadConfig(v *viper.Viper, name string) {
	global.Log.Infof("配置文件变化[djiads]: %s", name)

	newConfig, err := unmarshalConfig(v)
	if err != nil {
		global.Log.Errorf("新配置无效, 继续使用旧配置: %v", err)
		return
	}

	oldConfig := global.Config()
	global.SetConfig(newConfig)
	i.HandleConfigChange(oldConfig, newConfig)
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	if c.ProjectName == "" {
		c.ProjectName = "Cellphone Shop Chatbot"
	}
	if c.Port != "" {
		c.GinAddr = ":" + c.Port
	}
	if c.GinAddr == "" {
		c.GinAddr = ":3000"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Ho_Chi_Minh"
	}
	if len(c.Cors) == 0 {
		c.Cors = []string{"*"}
	}
	if c.Database.Type == string(enum.SQLITE) && c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}

	c.Ollama.Url = utils.TrimURL(c.Ollama.Url)
	if c.Ollama.Url == "" {
		c.Ollama.Url = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "qwen2.5:3b"
	}
	if c.Ollama.Backend == "" {
		c.Ollama.Backend = string(enum.BackendOllama)
	}
	if c.Ollama.Timeout == 0 {
		c.Ollama.Timeout = 120
	}
	if c.Ollama.Temperature == 0 {
		c.Ollama.Temperature = 0.7
	}
	if c.Ollama.TopP == 0 {
		c.Ollama.TopP = 0.9
	}

	c.Store.ApiBaseUrl = utils.TrimURL(c.Store.ApiBaseUrl)
	if c.Store.ApiBaseUrl == "" {
		c.Store.ApiBaseUrl = "http://localhost:5000/api"
	}
	c.Store.WebBaseUrl = utils.TrimURL(c.Store.WebBaseUrl)
	if c.Store.WebBaseUrl == "" {
		c.Store.WebBaseUrl = "http://localhost:5173"
	}
	if c.Store.Timeout == 0 {
		c.Store.Timeout = 10
	}

	if c.Chat.MaxMessageLength == 0 {
		c.Chat.MaxMessageLength = 2000
	}
	if c.Chat.DefaultSearchLimit == 0 {
		c.Chat.DefaultSearchLimit = 3
	}
	if c.Chat.MaxSearchLimit == 0 {
		c.Chat.MaxSearchLimit = 10
	}

	c.Mcp.Url = utils.TrimURL(c.Mcp.Url)
	if c.Mcp.OrderTool == "" {
		c.Mcp.OrderTool = "query_order"
	}
}

// checkConfig 校验启动必需的配置, 不合法时直接失败
func checkConfig(c *config.Config) error {
	urls := map[string]string{
		"ollama.url":         c.Ollama.Url,
		"store.api_base_url": c.Store.ApiBaseUrl,
		"store.web_base_url": c.Store.WebBaseUrl,
	}
	if c.Mcp.Url != "" {
		urls["mcp.url"] = c.Mcp.Url
	}
	for key, raw := range urls {
		if err := checkURL(raw); err != nil {
			return fmt.Errorf("配置 %s 无效[k3v9qe]: %w", key, err)
		}
	}

	switch enum.LlmBackend(c.Ollama.Backend) {
	case enum.BackendOllama, enum.BackendOpenAI:
	default:
		return fmt.Errorf("配置 ollama.backend 无效[w1c5tm]: %s", c.Ollama.Backend)
	}

	switch c.Database.Type {
	case "", string(enum.SQLITE), string(enum.MYSQL):
	default:
		return fmt.Errorf("配置 database.type 无效[pq6n0d]: %s", c.Database.Type)
	}

	if c.Chat.DefaultSearchLimit > c.Chat.MaxSearchLimit {
		return errors.New("配置 chat.default_search_limit 不能大于 chat.max_search_limit[g7ya2s]")
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("仅支持 http/https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("缺少主机名: %s", raw)
	}
	return nil
}
