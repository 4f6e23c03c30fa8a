package tetris

import "time"

type State int

const (
	Running State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

type Config struct {
	Width         int
	Height        int
	BaseInterval  time.Duration
	MinInterval   time.Duration
	LineScore     int
	LinesPerLevel int
}

func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        20,
		BaseInterval:  time.Second,
		MinInterval:   50 * time.Millisecond,
		LineScore:     100,
		LinesPerLevel: 10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.BaseInterval <= 0 {
		c.BaseInterval = def.BaseInterval
	}
	if c.MinInterval <= 0 {
		c.MinInterval = def.MinInterval
	}
	if c.LineScore <= 0 {
		c.LineScore = def.LineScore
	}
	if c.LinesPerLevel <= 0 {
		c.LinesPerLevel = def.LinesPerLevel
	}
	return c
}

// LockResult describes what happened when the active piece could not move
// down any further.
type LockResult struct {
	Locked      bool
	Cleared     int
	ClearedRows []int
	ScoreDelta  int
	LevelUp     bool
	GameOver    bool
}

type Option func(*Game)

func WithRandomizer(r Randomizer) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

func WithSounder(s Sounder) Option {
	return func(g *Game) {
		if s != nil {
			g.sound = s
		}
	}
}

// Game is a single play session. It is not safe for concurrent use; callers
// serialize ticks and input on one goroutine.
type Game struct {
	cfg      Config
	board    *Board
	current  Kind
	next     Kind
	pos      Point
	rotation int
	score    int
	lines    int
	level    int
	state    State
	rng      Randomizer
	sound    Sounder
}

func New(cfg Config, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg.withDefaults(),
		sound: nopSounder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewUniform(0)
	}
	g.start()
	return g
}

func (g *Game) start() {
	g.board = NewBoard(g.cfg.Width, g.cfg.Height)
	g.score = 0
	g.lines = 0
	g.level = 1
	g.state = Running
	g.current = g.rng.Next()
	g.next = g.rng.Next()
	g.spawn()
}

func (g *Game) Config() Config { return g.cfg }
func (g *Game) Board() *Board { return g.board }
func (g *Game) Current() Kind { return g.current }
func (g *Game) Next() Kind { return g.next }
func (g *Game) Position() Point { return g.pos }
func (g *Game) Rotation() int { return g.rotation }
func (g *Game) Score() int { return g.score }
func (g *Game) Lines() int { return g.lines }
func (g *Game) Level() int { return g.level }
func (g *Game) State() State { return g.state }
func (g *Game) Paused() bool { return g.state == Paused }
func (g *Game) Over() bool { return g.state == GameOver }
func (g *Game) Shape() Shape { return ShapeAt(g.current, g.rotation) }
func (g *Game) accepting() bool { return g.state == Running }
func (g *Game) play(event Event) { g.sound.Play(event) }

// TickInterval is the gravity period for the current level.
func (g *Game) TickInterval() time.Duration {
	interval := g.cfg.BaseInterval / time.Duration(g.level)
	if interval < g.cfg.MinInterval {
		return g.cfg.MinInterval
	}
	return interval
}

func (g *Game) Tick() LockResult {
	return g.MoveDown()
}

// MoveDown moves the piece one row, or locks it when the row below is
// blocked.
func (g *Game) MoveDown() LockResult {
	if !g.accepting() {
		return LockResult{}
	}
	if !g.collides(g.pos.X, g.pos.Y+1, g.rotation) {
		g.pos.Y++
		return LockResult{}
	}
	return g.lockAndSpawn()
}

func (g *Game) MoveLeft() bool { return g.move(-1) }
func (g *Game) MoveRight() bool { return g.move(1) }

func (g *Game) move(dx int) bool {
	if !g.accepting() {
		return false
	}
	if g.collides(g.pos.X+dx, g.pos.Y, g.rotation) {
		return false
	}
	g.pos.X += dx
	g.play(EventMove)
	return true
}

// Rotate turns the piece clockwise, kicking one column left then right when
// the rotated shape is blocked in place.
func (g *Game) Rotate() bool {
	if !g.accepting() {
		return false
	}
	rot := (g.rotation + 1) % 4
	for _, dx := range []int{0, -1, 1} {
		if !g.collides(g.pos.X+dx, g.pos.Y, rot) {
			g.pos.X += dx
			g.rotation = rot
			g.play(EventRotate)
			return true
		}
	}
	return false
}

func (g *Game) HardDrop() LockResult {
	if !g.accepting() {
		return LockResult{}
	}
	g.pos.Y = g.GhostY()
	return g.lockAndSpawn()
}

// GhostY is the lowest row the piece can reach by falling straight down.
func (g *Game) GhostY() int {
	y := g.pos.Y
	for !g.collides(g.pos.X, y+1, g.rotation) {
		y++
	}
	return y
}

func (g *Game) TogglePause() State {
	switch g.state {
	case Running:
		g.state = Paused
	case Paused:
		g.state = Running
	}
	return g.state
}

func (g *Game) Reset() {
	g.start()
	g.play(EventReset)
}

// Grid returns the board with the active piece drawn in.
func (g *Game) Grid() [][]Cell {
	grid := g.board.Rows()
	if g.state == GameOver {
		return grid
	}
	for _, p := range g.Shape().Cells() {
		x := g.pos.X + p.X
		y := g.pos.Y + p.Y
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = CellOf(g.current)
		}
	}
	return grid
}

func (g *Game) lockAndSpawn() LockResult {
	g.board.Lock(g.Shape(), g.pos, g.current)
	g.play(EventDrop)
	result := LockResult{Locked: true}
	result.ClearedRows = g.board.CompleteRows()
	result.Cleared = g.board.ClearLines()
	if result.Cleared > 0 {
		result.ScoreDelta = result.Cleared * g.cfg.LineScore * g.level
		g.score += result.ScoreDelta
		g.lines += result.Cleared
		level := g.lines/g.cfg.LinesPerLevel + 1
		result.LevelUp = level > g.level
		g.level = level
		g.play(EventLine)
	}
	g.current = g.next
	g.next = g.rng.Next()
	g.spawn()
	result.GameOver = g.state == GameOver
	return result
}

func (g *Game) spawn() {
	g.rotation = 0
	g.pos = Point{X: (g.cfg.Width - g.current.Shape().Width()) / 2, Y: 0}
	if g.collides(g.pos.X, g.pos.Y, g.rotation) {
		g.state = GameOver
		g.play(EventGameOver)
	}
}

func (g *Game) collides(x, y, rotation int) bool {
	return g.board.Collides(ShapeAt(g.current, rotation), Point{X: x, Y: y})
}
