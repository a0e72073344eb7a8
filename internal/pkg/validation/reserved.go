package validation

import "strings"

// Below is a large but non-exhaustive list of names which users should
// not be able to register with. For a site that derives email
// addresses, subdomains, or profile URLs from usernames, these names
// collide with addresses, hostnames, and well-known files that must
// stay out of user hands.
//
// Credit for the basic idea and most of the list to Geoffrey Thomas:
// https://ldpreload.com/blog/names-to-reserve

var specialHostnames = []string{
	"autoconfig",    // Thunderbird autoconfig
	"autodiscover",  // MS Outlook/Exchange autoconfig
	"broadcasthost", // Network broadcast hostname
	"isatap",        // IPv6 tunnel autodiscovery
	"localdomain",   // Loopback
	"localhost",     // Loopback
	"wpad",          // Proxy autodiscovery
}

var protocolHostnames = []string{
	"email",
	"ftp",
	"imap",
	"mail",
	"mx",
	"news",
	"ns0",
	"ns1",
	"ns2",
	"ns3",
	"ns4",
	"ns5",
	"ns6",
	"ns7",
	"ns8",
	"ns9",
	"pop",
	"pop3",
	"smtp",
	"usenet",
	"uucp",
	"webmail",
	"www",
}

var adminUsernames = []string{
	"domainadmin",
	"domainadministrator",
	"administration",
	"owner",
	"sys",
	"system",
}

// Email addresses known to be used by certificate authorities during
// domain-control verification.
var caAddresses = []string{
	"admin",
	"administrator",
	"domainadmin",
	"domainadministrator",
	"hostmaster",
	"info",
	"is",
	"it",
	"mis",
	"postmaster",
	"root",
	"ssladmin",
	"ssladministrator",
	"sslwebmaster",
	"sysadmin",
	"webmaster",
}

// RFC 2142 mailbox names not already covered.
var rfc2142 = []string{
	"abuse",
	"marketing",
	"noc",
	"sales",
	"security",
	"support",
	"unsenet",
}

var noreplyAddresses = []string{
	"mailer-daemon",
	"mailerdaemon",
	"nobody",
	"noreply",
	"no-reply",
}

var sensitiveFilenames = []string{
	"clientaccesspolicy.xml", // Silverlight cross-domain policy file
	"crossdomain.xml",        // Flash cross-domain policy file
	"favicon.ico",
	"humans.txt",
	"keybase.txt", // Keybase ownership-verification URL
	"robots.txt",
	"security.txt",
	".htaccess",
	".htpasswd",
	".well-known",
	".well-known/",
	"/.well-known",
	"/.well-known/",
}

// Other names that could be problems depending on URL or subdomain
// structure.
var otherSensitiveNames = []string{
	"about",
	"account",
	"accounts",
	"app",
	"auth",
	"authorize",
	"blog",
	"buy",
	"cart",
	"clients",
	"contact",
	"contactus",
	"contact-us",
	"copyright",
	"css",
	"dashboard",
	"dev",
	"developer",
	"developers",
	"doc",
	"docs",
	"download",
	"downloads",
	"enquiry",
	"error",
	"errors",
	"events",
	"example",
	"examples",
	"faq",
	"faqs",
	"feature",
	"features",
	"guest",
	"guests",
	"help",
	"image",
	"images",
	"img",
	"inquiry",
	"license",
	"js",
	"login",
	"logout",
	"me",
	"media",
	"myaccount",
	"new",
	"oauth",
	"pay",
	"payment",
	"payments",
	"plans",
	"portfolio",
	"preferences",
	"pricing",
	"privacy",
	"profile",
	"register",
	"secure",
	"settings",
	"signin",
	"signup",
	"signout",
	"src",
	"ssl",
	"status",
	"store",
	"subscribe",
	"terms",
	"tos",
	"tutorial",
	"tutorials",
	"user",
	"users",
	"weblog",
	"work",
}

// reservedNames is the merged lookup set.
var reservedNames = buildReservedSet(
	specialHostnames,
	protocolHostnames,
	adminUsernames,
	caAddresses,
	rfc2142,
	noreplyAddresses,
	sensitiveFilenames,
	otherSensitiveNames,
)

func buildReservedSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, name := range list {
			set[name] = struct{}{}
		}
	}
	return set
}

// IsReservedName reports whether value is reserved and must not be
// registered. Matching is exact, except for the ".well-known" prefix
// which is always rejected.
func IsReservedName(value string) bool {
	if _, ok := reservedNames[value]; ok {
		return true
	}
	return strings.HasPrefix(value, ".well-known")
}
