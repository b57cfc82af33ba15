package chat

import "strings"

// cachedTopic binds one topic's trigger keywords to its canonical answer.
// The table is ordered: the first topic with a matching keyword wins, so
// a message mentioning both pricing and hours resolves to pricing. There
// is no scoring; ambiguous phrasing may mis-route and that is accepted.
type cachedTopic struct {
	topic    string
	keywords []string
	answer   string
}

var cachedTopics = []cachedTopic{
	{
		topic:    "pricing",
		keywords: []string{"price", "cost", "how much", "fee"},
		answer:   "Our physiotherapy sessions are £75 for both assessments and follow-ups. Each session is 50 minutes long. If we use specialist equipment like shockwave therapy or Class IV laser, there's an additional £45 surcharge. Remedial rehabilitation sessions are £65, and prescribing is £12.50.",
	},
	{
		topic:    "hours",
		keywords: []string{"hours", "open", "when are you", "opening times"},
		answer:   "We're open Monday to Friday, 8:30am to 9:00pm. We're closed on weekends and all UK bank holidays.",
	},
	{
		topic:    "locations",
		keywords: []string{"location", "address", "where are you", "where is"},
		answer:   "We have two locations. Our Alcester clinic is at Kinwarton Road, Alcester, B49 6AD. Our Redditch clinic is at 51 Bromsgrove Road, Redditch, B97 4RH.",
	},
	{
		topic:    "cancellation",
		keywords: []string{"cancel", "cancellation", "reschedule"},
		answer:   "We have a 24-hour cancellation policy. If you cancel with less than 24 hours notice, the full fee will be charged.",
	},
	{
		topic:    "insurance",
		keywords: []string{"insurance", "bupa", "claim back"},
		answer:   "We operate on a self-pay model. You pay for your session upfront, and you're welcome to claim it back through your insurance provider yourself. We don't work directly with Bupa, but many of our patients successfully claim back from other insurers.",
	},
}

// MatchCached returns the canonical answer for a frequently asked topic,
// or false when the message matches none of the keyword sets.
func MatchCached(message string) (string, bool) {
	msg := strings.ToLower(message)

	for _, topic := range cachedTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(msg, keyword) {
				return topic.answer, true
			}
		}
	}

	return "", false
}
