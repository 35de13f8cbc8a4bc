package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// StoreError 存储层错误包装。
// 用于将「查询失败」与「查无数据」区分开：查无数据由各业务 sentinel
// （如 gorm.ErrRecordNotFound 的映射）表达，StoreError 只表达 I/O 层面失败。
type StoreError struct {
	Op  string // 失败的逻辑操作，如 "加载排班条目"
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError 包装存储层失败
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError 判断是否为存储层失败
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
