package dashboard

type SnippetCategory string

const (
	CategoryFrontend  SnippetCategory = "Frontend"
	CategoryBackend   SnippetCategory = "Backend"
	CategoryDevOps    SnippetCategory = "DevOps"
	CategoryAlgorithm SnippetCategory = "Algorithm"
	CategoryUtility   SnippetCategory = "Utility"
)

type CodeSnippet struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Language string          `json:"language"`
	Code     string          `json:"code"`
	Author   string          `json:"author"`
	Tags     []string        `json:"tags"`
	Likes    int             `json:"likes"`
	Created  string          `json:"created"`
	Category SnippetCategory `json:"category"`
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectPlanning  ProjectStatus = "Planning"
)

type Project struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Status   ProjectStatus `json:"status"`
	Progress int           `json:"progress"`
	Team     []string      `json:"team"`
	Deadline string        `json:"deadline"`
	Priority string        `json:"priority"`
}

var snippets = []CodeSnippet{
	{
		ID:       1,
		Title:    "React Custom Hook for API Calls",
		Language: "typescript",
		Code: `import { useState, useEffect } from 'react';

const useApi = <T>(url: string) => {
  const [data, setData] = useState<T | null>(null);
  const [loading, setLoading] = useState(true);
  const [error, setError] = useState<string | null>(null);

  useEffect(() => {
    const fetchData = async () => {
      try {
        const response = await fetch(url);
        if (!response.ok) throw new Error('Failed to fetch');
        const result = await response.json();
        setData(result);
      } catch (err) {
        setError(err instanceof Error ? err.message : 'Unknown error');
      } finally {
        setLoading(false);
      }
    };

    fetchData();
  }, [url]);

  return { data, loading, error };
};

export default useApi;`,
		Author:   "Sarah Chen",
		Tags:     []string{"react", "hooks", "typescript", "api"},
		Likes:    24,
		Created:  "2024-01-28",
		Category: CategoryFrontend,
	},
	{
		ID:       2,
		Title:    "Python Async Rate Limiter",
		Language: "python",
		Code: `import asyncio
import time
from collections import defaultdict

class RateLimiter:
    def __init__(self, max_calls: int, time_window: int):
        self.max_calls = max_calls
        self.time_window = time_window
        self.calls = defaultdict(list)
    
    async def acquire(self, key: str) -> bool:
        now = time.time()
        # Clean old entries
        self.calls[key] = [
            call_time for call_time in self.calls[key]
            if now - call_time < self.time_window
        ]
        
        if len(self.calls[key]) < self.max_calls:
            self.calls[key].append(now)
            return True
        return False

# Usage
limiter = RateLimiter(max_calls=10, time_window=60)
if await limiter.acquire("user_123"):
    print("Request allowed")`,
		Author:   "Mike Rodriguez",
		Tags:     []string{"python", "async", "rate-limiting", "backend"},
		Likes:    18,
		Created:  "2024-01-27",
		Category: CategoryBackend,
	},
	{
		ID:       3,
		Title:    "Docker Multi-Stage Build",
		Language: "dockerfile",
		Code: `# Multi-stage build for Node.js app
FROM node:18-alpine AS builder
WORKDIR /app
COPY package*.json ./
RUN npm ci --only=production

FROM node:18-alpine AS runtime
WORKDIR /app
COPY --from=builder /app/node_modules ./node_modules
COPY . .
EXPOSE 3000
USER node
CMD ["npm", "start"]`,
		Author:   "Alex Thompson",
		Tags:     []string{"docker", "nodejs", "devops", "optimization"},
		Likes:    31,
		Created:  "2024-01-26",
		Category: CategoryDevOps,
	},
	{
		ID:       4,
		Title:    "Binary Search Implementation",
		Language: "javascript",
		Code: `function binarySearch(arr, target) {
    let left = 0;
    let right = arr.length - 1;
    
    while (left <= right) {
        const mid = Math.floor((left + right) / 2);
        
        if (arr[mid] === target) {
            return mid;
        } else if (arr[mid] < target) {
            left = mid + 1;
        } else {
            right = mid - 1;
        }
    }
    
    return -1; // Not found
}

// Usage
const sortedArray = [1, 3, 5, 7, 9, 11, 13, 15];
console.log(binarySearch(sortedArray, 7)); // Output: 3`,
		Author:   "Emma Wilson",
		Tags:     []string{"algorithm", "search", "javascript", "datastructures"},
		Likes:    15,
		Created:  "2024-01-25",
		Category: CategoryAlgorithm,
	},
}

var projects = []Project{
	{ID: 1, Name: "E-commerce Platform", Status: ProjectActive, Progress: 75, Team: []string{"Sarah", "Mike", "Alex"}, Deadline: "2024-02-15", Priority: "High"},
	{ID: 2, Name: "Mobile App Redesign", Status: ProjectActive, Progress: 45, Team: []string{"Emma", "David"}, Deadline: "2024-03-01", Priority: "Medium"},
	{ID: 3, Name: "API Gateway Migration", Status: ProjectPlanning, Progress: 10, Team: []string{"Mike", "Alex"}, Deadline: "2024-02-28", Priority: "High"},
	{ID: 4, Name: "Documentation Portal", Status: ProjectCompleted, Progress: 100, Team: []string{"Sarah", "Emma"}, Deadline: "2024-01-20", Priority: "Low"},
}

type EngineeringStats struct {
	Snippets          int `json:"snippets"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	AverageProgress   int `json:"averageProgress"`
}

type EngineeringView struct {
	Snippets []CodeSnippet    `json:"snippets"`
	Projects []Project        `json:"projects"`
	Stats    EngineeringStats `json:"stats"`
	Filters  []SelectFilter   `json:"filters"`
}

// Engineering filters the snippet library. Projects are always listed in
// full.
func Engineering(q Query) EngineeringView {
	view := EngineeringView{
		Snippets: []CodeSnippet{},
		Projects: append([]Project(nil), projects...),
		Filters: []SelectFilter{
			{Name: "language", Label: "Language", Options: withAll("typescript", "python", "javascript", "dockerfile")},
			{Name: "category", Label: "Category", Options: withAll(string(CategoryFrontend), string(CategoryBackend), string(CategoryDevOps), string(CategoryAlgorithm), string(CategoryUtility))},
		},
	}

	for _, s := range snippets {
		fields := append([]string{s.Title}, s.Tags...)
		if q.matchesSearch(fields...) &&
			q.matchesSelect("language", s.Language) &&
			q.matchesSelect("category", string(s.Category)) {
			view.Snippets = append(view.Snippets, s)
		}
	}

	var progress int
	for _, p := range projects {
		progress += p.Progress
		switch p.Status {
		case ProjectActive:
			view.Stats.ActiveProjects++
		case ProjectCompleted:
			view.Stats.CompletedProjects++
		}
	}
	view.Stats.Snippets = len(snippets)
	view.Stats.AverageProgress = int(float64(progress)/float64(len(projects)) + 0.5)

	return view
}
