package game

// MaxScore 分数上限
const MaxScore = 9990

// GameState 当前会话的游戏数据
//
// 只在派发线程上读写；需要交给后台存档任务时使用 Snapshot 拷贝。
type GameState struct {
	Score      int
	Difficulty Difficulty

	// SaveID 最近一次保存/读取的存档ID，新游戏为空
	SaveID string
}

// NewGameState 创建新的游戏数据
func NewGameState(difficulty Difficulty) *GameState {
	return &GameState{Difficulty: difficulty}
}

// AddScore 增加分数，带上限检查
func (gs *GameState) AddScore(amount int) {
	gs.Score += amount
	if gs.Score > MaxScore {
		gs.Score = MaxScore
	}
	if gs.Score < 0 {
		gs.Score = 0
	}
}

// Reset 开始新游戏
func (gs *GameState) Reset() {
	gs.Score = 0
	gs.SaveID = ""
}

// Snapshot 生成可以交给后台任务的存档数据
func (gs *GameState) Snapshot() SaveData {
	return SaveData{
		ID:         gs.SaveID,
		Score:      gs.Score,
		Difficulty: gs.Difficulty,
	}
}

// Apply 用读取到的存档覆盖当前数据
func (gs *GameState) Apply(data SaveData) {
	gs.Score = data.Score
	gs.Difficulty = data.Difficulty
	gs.SaveID = data.ID
}
