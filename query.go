package billchain

import "fmt"

// Query modifiers understood by bucket query handlers. An empty modifier
// asks for an exact key match.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for a single path. Handlers only get
// read access to the committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is implemented by every module, registering its query
// paths.
type QueryRegister func(QueryRouter)

// QueryRouter maps ABCI query paths to handlers. Paths include the leading
// slash, for example /bills or /bills/maker.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics if the path is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %s registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns nil when nothing is registered under the path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
