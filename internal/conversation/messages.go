package conversation

// Bot replies
const (
	msgWelcome = "Hi %s! Send /create_account to open a new account (you need at least one). " +
		"Send /add_transaction to record income or an expense. " +
		"Send /accounts to see your balances. " +
		"Send /analytics to look at your spending and savings (coming soon). " +
		"Send /cancel to abort the current dialog."
	msgUnknownCommand = "I don't know that command. Try /start to see what I can do."
	msgCancelled      = "Cancelled."
	msgFailure        = "Something went wrong, please try again later."

	msgAskAccountName      = "Choose a name for your new account:"
	msgEmptyAccountName    = "The account name can't be empty. Try again:"
	msgAskAccountType      = "Choose the account type:"
	msgAskCurrency         = "Choose the currency:"
	msgAskInitialBalance   = "Enter the initial balance of the account:"
	msgInvalidBalance      = "Enter a valid balance, up to two decimal places:"
	msgAccountCreated      = "Account `%s` created!"
	msgNoAccounts          = "You don't have any accounts yet. Send /create_account first!"
	msgChooseAccount       = "Choose the account:"
	msgAskAmount           = "Enter the transaction amount (e.g. 50.25 or -50.25):"
	msgInvalidAmount       = "The transaction amount must be a number with up to two decimal places:"
	msgChooseCategory      = "Pick the category that fits best:"
	msgAskDescription      = "Enter a description of the transaction, or 'none':"
	msgTransactionRecorded = "Your account `%s` now holds %s!"

	msgAccountsHeader = "Your accounts:"
	msgAccountLine    = "%s (%s): %s"
)
