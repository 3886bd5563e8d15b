package docs

// @title 模板目录 API
// @version 1.0
// @description 自动化模板目录服务：浏览、详情、下载、相关推荐和SEO元数据
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
