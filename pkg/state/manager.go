package state

// Producer 提供一个实例的权威订阅列表
type Producer interface {
	Subscriptions() []Subscription
}

// Manager 订阅集合管理器
//
// 首次访问时调用一次 Producer 并缓存结果，之后所有的挂接/摘除
// 都遍历缓存的列表。订阅里的处理器通常是绑定到实例的闭包，
// 每次重新生成会得到新的监听器，旧的将无法注销。
type Manager struct {
	producer Producer
	subs     []Subscription
	built    bool
}

// NewManager 创建独立使用的订阅集合管理器
func NewManager(p Producer) *Manager {
	return &Manager{producer: p}
}

// SubscriptionList 返回缓存的订阅列表（首次访问时构建）
func (m *Manager) SubscriptionList() []Subscription {
	if !m.built {
		m.built = true
		if m.producer != nil {
			m.subs = m.producer.Subscriptions()
		}
	}
	return m.subs
}

// AttachAll 按列表顺序挂接所有订阅
func (m *Manager) AttachAll() {
	for _, s := range m.SubscriptionList() {
		if s != nil {
			s.Attach()
		}
	}
}

// DetachAll 按列表顺序摘除所有订阅
func (m *Manager) DetachAll() {
	for _, s := range m.SubscriptionList() {
		if s != nil {
			s.Detach()
		}
	}
}
