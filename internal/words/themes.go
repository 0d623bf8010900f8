package words

// Built-in themes. Every entry must be drawable in well under a round.
var defaultThemes = map[string][]string{
	"general": {
		"house", "car", "tree", "sun", "moon", "star", "book", "chair", "table",
		"door", "window", "cup", "ball", "hat", "shoe", "eye", "hand", "heart",
		"smile", "clock", "key", "bed", "boat", "plane", "camera", "castle",
		"umbrella", "snowman", "lighthouse", "rocket", "robot", "wizard", "pirate",
	},
	"animals": {
		"cat", "dog", "fish", "bird", "elephant", "giraffe", "lion", "tiger",
		"bear", "monkey", "snake", "rabbit", "mouse", "horse", "cow", "pig",
		"sheep", "chicken", "duck", "penguin", "octopus", "butterfly", "spider",
		"frog", "turtle", "dolphin", "shark", "whale", "dinosaur", "unicorn", "dragon",
	},
	"food": {
		"apple", "banana", "orange", "grape", "strawberry", "watermelon", "pizza",
		"burger", "fries", "hotdog", "sandwich", "taco", "sushi", "ice cream",
		"cake", "cookie", "donut", "chocolate", "candy", "popcorn", "bread",
		"cheese", "egg", "milk", "coffee", "tea", "juice", "soda", "water",
	},
	"objects": {
		"phone", "computer", "television", "radio", "camera", "watch", "glasses",
		"backpack", "pencil", "pen", "scissors", "hammer", "screwdriver", "ladder",
		"broom", "bucket", "shovel", "rake", "lamp", "candle", "flashlight",
		"umbrella", "wallet", "purse", "suitcase", "guitar", "piano", "drum",
	},
}
