package game

import (
	"reflect"
	"sort"
)

// 全局注册表使用的键
const (
	RegistryKeyLevel           = "level"           // 当前关卡 ID
	RegistryKeyActiveCharacter = "activeCharacter" // 当前操控角色的配置 ID
	RegistryKeyEnemiesDefeated = "enemiesDefeated" // 本次运行击败的敌人数
	RegistryKeyPartyAlive      = "partyAlive"      // 队伍存活人数
)

// RegistryListener 注册表值变化回调
type RegistryListener func(key string, oldValue, newValue interface{})

// Registry 跨场景共享的键值存储
// 场景销毁后数据仍然保留；单线程游戏循环中使用，无需加锁
type Registry struct {
	values    map[string]interface{}
	listeners map[string][]RegistryListener
}

// NewRegistry 创建空的注册表
func NewRegistry() *Registry {
	return &Registry{
		values:    make(map[string]interface{}),
		listeners: make(map[string][]RegistryListener),
	}
}

// Set 写入键值，值发生变化时通知监听者
func (r *Registry) Set(key string, value interface{}) {
	old, existed := r.values[key]
	r.values[key] = value
	if existed && sameValue(old, value) {
		return
	}
	for _, fn := range r.listeners[key] {
		fn(key, old, value)
	}
}

// Get 读取键值
func (r *Registry) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has 检查键是否存在
func (r *Registry) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete 删除键（不通知监听者）
func (r *Registry) Delete(key string) {
	delete(r.values, key)
}

// GetString 读取字符串值，不存在或类型不符时返回空串
func (r *Registry) GetString(key string) string {
	if s, ok := r.values[key].(string); ok {
		return s
	}
	return ""
}

// GetInt 读取整数值，不存在或类型不符时返回 0
func (r *Registry) GetInt(key string) int {
	if n, ok := r.values[key].(int); ok {
		return n
	}
	return 0
}

// Increment 整数值加 delta 并返回新值
func (r *Registry) Increment(key string, delta int) int {
	n := r.GetInt(key) + delta
	r.Set(key, n)
	return n
}

// OnChange 监听指定键的变化
func (r *Registry) OnChange(key string, fn RegistryListener) {
	r.listeners[key] = append(r.listeners[key], fn)
}

// Keys 返回所有键（排序后）
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameValue 比较两个值，不可比较的类型（切片、map）视为不同
func sameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
