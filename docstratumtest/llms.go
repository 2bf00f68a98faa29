package docstratumtest

// GoodLlmsTxt is a well-formed llms.txt document that should validate with
// few findings.
const GoodLlmsTxt = `# FastAPI

> FastAPI is a modern, fast web framework for building APIs with Python based on standard type hints.

FastAPI supports async request handling and automatic OpenAPI generation.

## Docs

- [Tutorial](https://fastapi.tiangolo.com/tutorial/): Step by step guide covering all the core features of the framework.
- [Advanced Guide](https://fastapi.tiangolo.com/advanced/): Deeper patterns for dependency injection and custom responses.

## Examples

- [Full Stack Template](https://github.com/fastapi/full-stack-fastapi-template): Production template with frontend and backend wired together.

## Optional

- [Release Notes](https://fastapi.tiangolo.com/release-notes/): Changes in each released version of the framework.
`

// BadLlmsTxt is a malformed document: no H1 title, no blockquote
// description, and a bare link without description.
const BadLlmsTxt = `Some introduction text without a heading.

## Docs

- https://example.com/docs
- [Guide]()
`
