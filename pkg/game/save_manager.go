package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoSave 指定的存档槽位没有存档
var ErrNoSave = errors.New("no save data")

// SaveData 存档数据结构
type SaveData struct {
	ID         string     `yaml:"id"`         // 存档ID（首次保存时生成）
	Score      int        `yaml:"score"`      // 分数
	Difficulty Difficulty `yaml:"difficulty"` // 难度
	SavedAt    time.Time  `yaml:"savedAt"`    // 保存时间
}

// 存储路径常量
const savesObject = "saves"

// DefaultSlot 默认存档槽位
const DefaultSlot = "slot1"

// SaveManager 存档管理器
//
// 职责：
//   - 把 SaveData 以 YAML 格式保存到 gdata 的 saves 对象下，每个槽位一个属性
//   - 读取槽位存档
//
// 架构说明：
//   - Save/Load 会在后台任务中调用，内部用互斥锁串行化
//   - gdataManager 为 nil 时进入降级模式，存档只保存在内存中
type SaveManager struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager
	memory       map[string][]byte // 降级模式下的内存存档

	// delay 模拟较慢的存储设备，用于演示等待界面
	delay time.Duration
	now   func() time.Time
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	if gdataManager == nil {
		log.Printf("[SaveManager] Warning: gdata not available, saves are kept in memory only")
	}
	return &SaveManager{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
		now:          time.Now,
	}
}

// SetDelay 设置每次存取的额外延迟
func (sm *SaveManager) SetDelay(d time.Duration) {
	sm.mu.Lock()
	sm.delay = d
	sm.mu.Unlock()
}

// Save 保存存档到指定槽位
//
// 存档没有ID时生成一个新的 UUID；SavedAt 设置为当前时间。
//
// 返回：
//   - SaveData: 实际写入的存档（带ID和时间）
//   - error: 如果序列化或保存失败返回错误
func (sm *SaveManager) Save(slot string, data SaveData) (SaveData, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.wait()

	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.SavedAt = sm.now().UTC()

	raw, err := yaml.Marshal(&data)
	if err != nil {
		return SaveData{}, fmt.Errorf("failed to marshal save data: %w", err)
	}

	if sm.gdataManager == nil {
		sm.memory[slot] = raw
		return data, nil
	}

	if err := sm.gdataManager.SaveObjectProp(savesObject, slot, raw); err != nil {
		return SaveData{}, fmt.Errorf("failed to save slot %s: %w", slot, err)
	}

	log.Printf("[SaveManager] Saved slot %s (id=%s, score=%d)", slot, data.ID, data.Score)
	return data, nil
}

// Load 读取指定槽位的存档
//
// 返回：
//   - SaveData: 读取的存档
//   - error: 槽位为空时返回 ErrNoSave
func (sm *SaveManager) Load(slot string) (SaveData, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.wait()

	raw, err := sm.read(slot)
	if err != nil {
		return SaveData{}, err
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return SaveData{}, fmt.Errorf("failed to parse save data: %w", err)
	}

	log.Printf("[SaveManager] Loaded slot %s (id=%s, score=%d)", slot, data.ID, data.Score)
	return data, nil
}

// Exists 检查槽位是否有存档
func (sm *SaveManager) Exists(slot string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.gdataManager == nil {
		_, ok := sm.memory[slot]
		return ok
	}
	return sm.gdataManager.ObjectPropExists(savesObject, slot)
}

func (sm *SaveManager) read(slot string) ([]byte, error) {
	if sm.gdataManager == nil {
		raw, ok := sm.memory[slot]
		if !ok {
			return nil, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
		}
		return raw, nil
	}

	if !sm.gdataManager.ObjectPropExists(savesObject, slot) {
		return nil, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
	}
	raw, err := sm.gdataManager.LoadObjectProp(savesObject, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return raw, nil
}

func (sm *SaveManager) wait() {
	if sm.delay > 0 {
		time.Sleep(sm.delay)
	}
}
