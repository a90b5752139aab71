package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 抽取错误：SERVICE_UNAVAILABLE, EMPTY_RESULT
//   - 打分错误：BACKEND_ERROR, INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "SERVICE_UNAVAILABLE"）
	Message string // 错误消息（写明失败了什么、应当检查什么）
	Module  string // 模块名称（如 "store", "extract", "scorer"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound           = "NOT_FOUND"            // 资源不存在
	ErrorCodeNotSupported       = "NOT_SUPPORTED"        // 操作不支持
	ErrorCodeUnavailable        = "SERVICE_UNAVAILABLE"  // 后端服务不可用/未配置
	ErrorCodeInvalidInput       = "INVALID_INPUT"        // 输入无效
	ErrorCodeEmptyResult        = "EMPTY_RESULT"         // 后端返回了不应为空的空结果
	ErrorCodeBackendError       = "BACKEND_ERROR"        // 后端调用失败
	ErrorCodeInternalError      = "INTERNAL_ERROR"       // 内部错误
	ErrorCodeReferenceDataEmpty = "REFERENCE_DATA_EMPTY" // 参考数据表为空
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleCache     = "cache"     // 缓存网关
	ModuleExtract   = "extract"   // 需求抽取
	ModuleCandidate = "candidate" // 候选生成
	ModuleScorer    = "scorer"    // 打分策略
	ModuleFusion    = "fusion"    // 融合排序
	ModuleEngine    = "engine"    // 引擎门面
	ModuleService   = "service"   // 外部模型服务
)

// 通用错误检查函数

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 SERVICE_UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsEmptyResult 检查错误是否为 EMPTY_RESULT
func IsEmptyResult(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyResult
	}
	return false
}

// IsBackendError 检查错误是否为 BACKEND_ERROR
func IsBackendError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeBackendError
	}
	return false
}
