package database

// Scope and key layout of the store.
//
//	guild:<guildID>  event:<eventID>                 Event (roster included)
//	guild:<guildID>  binding:<channelID>:<messageID> DisplayBinding
//	guild:<guildID>  event-binding:<eventID>         DisplayBinding (reverse index)
//	guild:<guildID>  timezones                       guild display zones
//	guild:<guildID>  vocabulary                      status vocabulary override
//	user:<userID>    event:<eventID>                 EventRef (personal index)
//	user:<userID>    timezone                        timezone preference

func guildScope(guildID string) string { return "guild:" + guildID }
func userScope(userID string) string   { return "user:" + userID }

func eventKey(eventID string) string { return "event:" + eventID }

func bindingKey(channelID, messageID string) string {
	return "binding:" + channelID + ":" + messageID
}

func eventBindingKey(eventID string) string { return "event-binding:" + eventID }

const (
	eventKeyPrefix  = "event:"
	timezonesKey    = "timezones"
	vocabularyKey   = "vocabulary"
	userTimezoneKey = "timezone"
)
