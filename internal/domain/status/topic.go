package status

// Topic names one section of the status document. The same name is the
// query-string selector that requests it.
type Topic string

const (
	TopicNetwork    Topic = "network"
	TopicSystem     Topic = "system"
	TopicLuci       Topic = "luci"
	TopicVnstat     Topic = "vnstat"
	TopicUsers      Topic = "users"
	TopicConnection Topic = "connection"
	TopicPublicIP   Topic = "publicip"
	TopicPing       Topic = "ping"
	TopicServices   Topic = "services"
	TopicLogs       Topic = "logs"
	TopicNetdata    Topic = "netdata"
)

// topicOrder is the serialization order of the document.
var topicOrder = [...]Topic{
	TopicNetwork,
	TopicSystem,
	TopicLuci,
	TopicVnstat,
	TopicUsers,
	TopicConnection,
	TopicPublicIP,
	TopicPing,
	TopicServices,
	TopicLogs,
	TopicNetdata,
}

var topicIndex = func() map[Topic]int {
	m := make(map[Topic]int, len(topicOrder))
	for i, t := range topicOrder {
		m[t] = i
	}
	return m
}()

// Topics returns every topic in document order.
func Topics() []Topic {
	out := make([]Topic, len(topicOrder))
	copy(out, topicOrder[:])
	return out
}

func (t Topic) String() string {
	return string(t)
}

func (t Topic) IsValid() bool {
	_, ok := topicIndex[t]
	return ok
}
