package chatbot

// Topic is one named reply bucket. The catalog is an ordered slice, not a
// map: the first topic whose rule matches wins, so insertion order is part
// of the contract ("help me create" answers from "help", not "create").
type Topic struct {
	Key     string
	Replies []string
}

var catalog = []Topic{
	{Key: "hello", Replies: []string{
		"Hello! I'm your task assistant. How can I help you today?",
		"Hi there! Need help managing your tasks?",
		"Hey! What can I do for you?",
	}},
	{Key: "help", Replies: []string{
		"I can help you with tasks! You can:\n- Create new tasks\n- Mark tasks as complete\n- Delete tasks\n- Filter and sort tasks\nWhat would you like to do?",
		"I'm here to assist with your task management. Ask me about creating, updating, or managing your tasks!",
	}},
	{Key: "create", Replies: []string{
		"To create a task, use the form at the top of the page. You can add a title, description, and due date. Would you like any other help?",
		"Creating tasks is easy! Just fill in the task form with a title (required), description (optional), and due date (optional).",
	}},
	{Key: "task", Replies: []string{
		"You can manage your tasks easily! Check the main page to view all your tasks, mark them complete, or delete them.",
		"Tasks can be created, completed, and deleted. Use the form to create new ones!",
	}},
	{Key: "complete", Replies: []string{
		"To mark a task as complete, click the checkbox next to it!",
		"Just click the checkbox on the task to mark it as done.",
	}},
	{Key: "delete", Replies: []string{
		"Click the 'Delete' button on a task to remove it. You'll be asked to confirm.",
		"To delete a task, use the delete button and confirm the action.",
	}},
	{Key: "filter", Replies: []string{
		"You can filter tasks by status (All, Pending, Completed) and sort by (Created, Title, Due date). Check the filter options above the task list!",
		"Use the filter and sort dropdowns to organize your view of tasks.",
	}},
}

// fallbackReplies answers in-domain messages that matched no topic and the
// catalog somehow has no "task" bucket to borrow from.
var fallbackReplies = []string{
	"I can help with task management! Ask me about creating, completing, or managing tasks.",
	"Sorry, I'm not sure about that. I'm here to help with your tasks!",
	"Feel free to ask me about your tasks!",
}

// domainKeywords gates which messages reach the matcher at all.
var domainKeywords = []string{
	"task", "create", "delete", "complete", "done", "due", "deadline",
	"filter", "sort", "help", "how", "add", "update", "edit",
}

const (
	emptyPromptReply = "Please type a question about tasks so I can help. For example: 'How do I create a task?'"
	declineReply     = "I can only help with task management. Please ask about creating, completing, deleting, or managing tasks."
	failSafeReply    = "Sorry, I couldn't process that. Please ask a question about tasks."
)
