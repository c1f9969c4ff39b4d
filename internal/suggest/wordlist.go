package suggest

// builtinWords is the fallback dictionary used when no word list file is
// available. It covers the most common English words so suggestions stay
// useful out of the box.
var builtinWords = []string{
	"a", "about", "after", "again", "all", "also", "always", "am", "an",
	"and", "any", "are", "around", "as", "ask", "at", "away",
	"back", "bad", "be", "because", "been", "before", "best", "better",
	"big", "book", "both", "boy", "bring", "but", "buy", "by",
	"call", "came", "can", "car", "change", "child", "come", "could",
	"day", "did", "different", "do", "does", "done", "down", "drink",
	"each", "eat", "end", "even", "every", "eyes",
	"family", "far", "fast", "feel", "few", "find", "first", "food",
	"for", "found", "friend", "from", "fun",
	"gave", "get", "girl", "give", "go", "going", "good", "got", "great",
	"had", "hand", "happy", "has", "have", "he", "hear", "hello", "help",
	"her", "here", "hey", "him", "his", "home", "house", "how",
	"i", "if", "in", "into", "is", "it", "its",
	"just", "keep", "kind", "know",
	"large", "last", "learn", "leave", "left", "let", "like", "little",
	"live", "long", "look", "love",
	"made", "make", "man", "many", "may", "me", "more", "most", "mother",
	"move", "much", "must", "my", "name", "near", "need", "never", "new",
	"next", "nice", "night", "no", "not", "now",
	"of", "off", "often", "old", "on", "once", "one", "only", "open",
	"or", "other", "our", "out", "over", "own",
	"part", "people", "place", "play", "please", "put",
	"read", "right", "run",
	"said", "same", "saw", "say", "school", "see", "she", "should",
	"show", "side", "sign", "small", "so", "some", "soon", "sorry",
	"sound", "speak", "start", "stop", "such",
	"take", "talk", "tell", "thank", "thanks", "that", "the", "their",
	"them", "then", "there", "these", "they", "thing", "think", "this",
	"those", "time", "to", "today", "together", "too", "try", "turn",
	"under", "until", "up", "us", "use",
	"very", "voice",
	"walk", "want", "was", "water", "way", "we", "week", "well", "went",
	"were", "what", "when", "where", "which", "while", "who", "why",
	"will", "with", "word", "work", "world", "would", "write",
	"yes", "you", "your",
}

// Builtin returns an engine over the built-in common word list.
func Builtin(maxCandidates int) *Engine {
	return New(builtinWords, maxCandidates)
}
