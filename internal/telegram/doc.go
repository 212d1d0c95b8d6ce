// Package telegram sends draw announcements through the Telegram Bot API.
//
// Messages are posted with a plain HTTP request to sendMessage using HTML
// parse mode. Authentication requires a bot token (from @BotFather) and a chat ID.
package telegram
