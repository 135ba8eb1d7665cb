// Package github implements the project board port against the GitHub
// GraphQL API (Projects v2).
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.ProjectBoard].
// It comprises the following components:
//
//   - Client: sends GraphQL documents through go-github and unwraps results
//   - ClientConfig: base URL, token, timeout and feature headers
//   - Projects: the four board operations (find project, create item,
//     find items for an issue, delete item)
//
// # Authentication
//
// A personal access token or installation token is passed in ClientConfig
// and sent as a bearer token through an oauth2 static token source. The
// token needs project write access on the organization.
//
// # Operations
//
//	findProjectId                  organization(login).projectV2(number).id
//	createItem                     addProjectV2ItemById(projectId, contentId)
//	findProjectItemsForIssueNumber viewer.organization.repository.issue.projectItems(first:50)
//	deleteItem                     deleteProjectV2Item(projectId, itemId)
//
// The API has no lookup from an issue's content ID to its board item, so
// removal enumerates the items linked to the issue number. A full page of
// 50 items is reported as [domain.ErrTooManyItems].
//
// # Error Handling
//
//   - HTTP failures: [APIError] with status code and message
//   - GraphQL errors arrays: [GraphQLError]; NOT_FOUND from the project
//     lookup is a normal "not found" outcome, not an error
//   - Rate limiting: [RateLimitError] with the reset time; calls are
//     neither throttled nor retried
//
// Every error is wrapped with the operation and the identifiers involved.
package github
