package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Dataset 错误：NOT_FOUND, INVALID_INPUT
//   - Symptom 错误：NO_TRAINING_DATA
//   - Store 错误：NOT_FOUND, UNAVAILABLE
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "NO_TRAINING_DATA"）
	Message string // 错误消息
	Module  string // 模块名称（如 "dataset", "symptom", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound       = "NOT_FOUND"        // 资源不存在
	ErrorCodeInvalidInput   = "INVALID_INPUT"    // 输入无效
	ErrorCodeUnavailable    = "UNAVAILABLE"      // 服务不可用
	ErrorCodeInternalError  = "INTERNAL_ERROR"   // 内部错误
	ErrorCodeNoTrainingData = "NO_TRAINING_DATA" // 数据集中无可提取症状，禁止训练/预测
)

// 模块名称常量
const (
	ModuleDataset = "dataset" // 数据集模块
	ModuleSymptom = "symptom" // 症状词表模块
	ModuleModel   = "model"   // 模型模块
	ModulePredict = "predict" // 预测模块
	ModuleStore   = "store"   // 存储模块
	ModuleRules   = "rules"   // 规则模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNoTrainingData 检查错误是否为 NO_TRAINING_DATA
func IsNoTrainingData(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNoTrainingData
	}
	return false
}

// ErrStoreNotFound 是 Store 未命中的哨兵错误，memory/redis 实现统一返回。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")
