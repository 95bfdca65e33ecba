package dialog

import "fmt"

// Reply texts. The reprompt variants are keyed off the validator reason
// codes so the user always hears why their input was rejected.

const (
	msgConsentAndAskName = "Hi! I can store your name, age, and address in my database " +
		"to help with future interactions. By continuing, you agree " +
		"that I will store these details until you delete them.\n\n" +
		"You can reply /cancel anytime to stop.\n\n" +
		"Let's get started. What's your full name?"

	msgNameInvalid = "I couldn't read that name. Please enter your full name\n" +
		"(1–100 characters, letters/numbers/spaces allowed)."

	msgAgeNotANumber = "That doesn't look like a valid age. Please enter a number\n" +
		"between 13 and 120 (e.g., 27)."

	msgAgeOutOfRange = "Thanks! For this bot, the allowed age is between 13 and 120.\n" +
		"Please enter a number in that range."

	msgAskAddress = "Got it. What's your address?\n" +
		"(Max 255 characters; you can include apartment/unit, etc.)"

	msgAddressInvalid = "Please enter a non-empty address up to 255 characters.\n" +
		"For example: 123 Main St, Springfield, IL 62704"

	msgCancelled = "No problem — I've cancelled the current process.\n" +
		"Send /start whenever you want to try again."

	msgDeleted = "Your stored details have been deleted.\n" +
		"You can provide them again anytime with /start."

	msgNothingStored = "No stored data found for your account.\n" +
		"You can provide your details with /start."

	msgDeleteFailed = "Sorry, there was an error deleting your data. Please try again later."

	msgSaveFailed = "Sorry, there was an error saving your data. " +
		"Please send your address again to retry."

	msgNoSession = "Send /start to begin, or /delete to erase your stored details."
)

func msgAskAge(name string) string {
	return fmt.Sprintf("Great, thanks %s.\nHow old are you? (Please enter a number between 13 and 120)", name)
}

func msgSaved(d Draft) string {
	return fmt.Sprintf("All set! I've saved your details.\n\n"+
		"Name: %s\nAge: %d\nAddress: %s\n\n"+
		"You can update these later by sending /start again,\n"+
		"or erase them anytime with /delete.", d.Name, d.Age, d.Address)
}
